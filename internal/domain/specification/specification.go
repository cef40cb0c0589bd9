package specification

import (
	"github.com/oksasatya/user-account-service/internal/domain/entity"
)

// Specification is a named, composable predicate over the user aggregate.
// Satisfies evaluates it in memory; ElasticQuery returns the equivalent
// Elasticsearch query fragment for the read replica. The two forms are
// maintained together and must stay logically equivalent, but they are not
// interchangeable: the read repository always uses ElasticQuery, in-memory
// filtering always uses Satisfies.
type Specification interface {
	Name() string
	Satisfies(u *entity.User) bool
	ElasticQuery() map[string]any
}

// And combines two specifications with logical conjunction. Satisfies
// short-circuits left to right; ElasticQuery produces a bool/must of the
// underlying native clauses.
func And(left, right Specification) Specification {
	return andSpecification{left: left, right: right}
}

type andSpecification struct {
	left  Specification
	right Specification
}

func (s andSpecification) Name() string {
	return s.left.Name() + "+" + s.right.Name()
}

func (s andSpecification) Satisfies(u *entity.User) bool {
	return s.left.Satisfies(u) && s.right.Satisfies(u)
}

func (s andSpecification) ElasticQuery() map[string]any {
	return map[string]any{
		"bool": map[string]any{
			"must": []map[string]any{s.left.ElasticQuery(), s.right.ElasticQuery()},
		},
	}
}

// MatchAll passes every aggregate. It is the explicit "no filter" choice; the
// builder returns it when composed with zero specifications.
func MatchAll() Specification { return matchAll{} }

type matchAll struct{}

func (matchAll) Name() string                  { return "match_all" }
func (matchAll) Satisfies(_ *entity.User) bool { return true }
func (matchAll) ElasticQuery() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// Builder accumulates specifications under left-associative AND.
type Builder struct {
	specs []Specification
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) With(s Specification) *Builder {
	if s != nil {
		b.specs = append(b.specs, s)
	}
	return b
}

func (b *Builder) Build() Specification {
	if len(b.specs) == 0 {
		return MatchAll()
	}
	out := b.specs[0]
	for _, s := range b.specs[1:] {
		out = And(out, s)
	}
	return out
}
