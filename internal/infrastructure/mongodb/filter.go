package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// never matches no document; every document has an _id.
var never = bson.M{"_id": bson.M{"$exists": false}}

var operators = map[query.Op]string{
	query.OpEq:  "$eq",
	query.OpNe:  "$ne",
	query.OpLt:  "$lt",
	query.OpLte: "$lte",
	query.OpGt:  "$gt",
	query.OpGte: "$gte",
	query.OpIn:  "$in",
}

// toBSON compiles a resolved filter. Array fields need no special case: an
// equality or $in against an array matches on membership.
func toBSON(s query.Schema, f query.Filter) bson.M {
	and := bson.A{}
	for _, name := range f.Fields() {
		def, ok := s[name]
		if !ok {
			return never
		}
		key := def.DocKey(name)
		for _, c := range f[name] {
			and = append(and, bson.M{key: clause(c)})
		}
	}
	switch len(and) {
	case 0:
		return bson.M{}
	case 1:
		return and[0].(bson.M)
	}
	return bson.M{"$and": and}
}

func clause(c query.Clause) any {
	if c.Op == query.OpContains {
		s, _ := c.Value.(string)
		return primitive.Regex{Pattern: regexp.QuoteMeta(s)}
	}
	if c.Op == query.OpIn {
		vals, _ := c.Value.([]any)
		if vals == nil {
			vals = []any{}
		}
		return bson.M{"$in": vals}
	}
	op, ok := operators[c.Op]
	if !ok {
		op = "$eq"
	}
	return bson.M{op: c.Value}
}

// sortDoc maps sort fields to document keys; _id breaks ties.
func sortDoc(s query.Schema, sorts []query.SortField) bson.D {
	out := bson.D{}
	for _, sf := range sorts {
		def, ok := s[sf.Field]
		if !ok {
			continue
		}
		dir := 1
		if sf.Desc {
			dir = -1
		}
		out = append(out, bson.E{Key: def.DocKey(sf.Field), Value: dir})
	}
	return append(out, bson.E{Key: "_id", Value: 1})
}
