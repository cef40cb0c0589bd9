package projection

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/readmodel"
)

// DocumentStore is the projector's port to the read replica. Upsert is an
// atomic insert-or-replace keyed by the document id; MarkDeleted flips the
// soft-delete flag in place.
type DocumentStore interface {
	Upsert(ctx context.Context, doc readmodel.UserDocument) error
	MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error
}

// Projector consumes serialized change envelopes and keeps the read replica
// eventually consistent with the write store. Process never panics across the
// consume boundary: every failure is logged and reported as false so the
// upstream transport decides about redelivery. Events for the same id must
// arrive in commit order; the projector does a blind replace, not a
// compare-and-set, so out-of-order delivery means last writer wins.
type Projector struct {
	store  DocumentStore
	logger *logrus.Logger
}

func NewProjector(store DocumentStore, logger *logrus.Logger) *Projector {
	return &Projector{store: store, logger: logger}
}

// Process applies one change envelope and reports whether it was handled.
// Unknown operations are deliberately reported as handled so a poison message
// cannot stall the consumer.
func (p *Projector) Process(ctx context.Context, payload []byte) bool {
	var env ChangeEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		p.logger.WithError(err).Warn("projector: unparsable change envelope")
		return false
	}

	switch env.Op {
	case OpCreate, OpSnapshot, OpUpdate:
		if env.After == nil {
			p.logger.WithFields(logrus.Fields{"op": env.Op, "table": env.Source.Table}).
				Warn("projector: envelope missing after record")
			return false
		}
		doc := documentFromRecord(env.After)
		if err := p.store.Upsert(ctx, doc); err != nil {
			p.logger.WithError(err).WithField("user_id", doc.ID).Error("projector: upsert failed")
			return false
		}
		return true

	case OpDelete:
		if env.Before == nil || env.Before.ID == "" {
			p.logger.WithField("table", env.Source.Table).
				Warn("projector: delete envelope missing before record")
			return false
		}
		deletedAt := env.Before.DeletedAt.OrNow()
		if err := p.store.MarkDeleted(ctx, env.Before.ID, deletedAt); err != nil {
			p.logger.WithError(err).WithField("user_id", env.Before.ID).Error("projector: tombstone failed")
			return false
		}
		return true

	default:
		p.logger.WithField("op", env.Op).Info("projector: ignoring unrecognized operation")
		return true
	}
}

func documentFromRecord(rec *ChangeRecord) readmodel.UserDocument {
	doc := readmodel.UserDocument{
		ID:               rec.ID,
		Email:            rec.Email,
		FirstName:        rec.FirstName,
		LastName:         rec.LastName,
		PhoneNumber:      rec.PhoneNumber,
		Birthdate:        rec.Birthdate.Ptr(),
		AboutMe:          rec.AboutMe,
		ProfileImageName: rec.ProfileImageName,
		CreatedAt:        rec.CreatedAt.OrNow(),
		UpdatedAt:        rec.UpdatedAt.Ptr(),
		LastLogin:        rec.LastLogin.Ptr(),
		DeletedAt:        rec.DeletedAt.Ptr(),
		IsDeleted:        rec.IsDeleted,
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		doc.Location = &readmodel.GeoPoint{Lat: *rec.Latitude, Lon: *rec.Longitude}
	}
	return doc
}
