package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devtrails/bootcamp-api/internal/listing"
)

// operator sigil prefix used by the store
var mongoOps = map[listing.Operator]string{
	listing.OpGt:  "$gt",
	listing.OpGte: "$gte",
	listing.OpLt:  "$lt",
	listing.OpLte: "$lte",
	listing.OpIn:  "$in",
}

// CompileFilter converts parsed filters into a bson document. Multiple
// range operators on the same field merge into one clause.
func CompileFilter(q *listing.Query) bson.M {
	filter := bson.M{}
	for _, f := range q.Filters {
		if f.Op == listing.OpEq {
			filter[f.Field] = f.Value
			continue
		}
		clause, ok := filter[f.Field].(bson.M)
		if !ok {
			clause = bson.M{}
			filter[f.Field] = clause
		}
		clause[mongoOps[f.Op]] = f.Value
	}
	return filter
}

// SortSpec converts the parsed sort keys into a mongo sort document.
func SortSpec(q *listing.Query) bson.D {
	sort := bson.D{}
	for _, k := range q.Sort {
		dir := 1
		if k.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: k.Field, Value: dir})
	}
	return sort
}

// FindOptions builds projection, sort, and skip/limit options for a query.
func FindOptions(q *listing.Query) *options.FindOptions {
	opts := options.Find().
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))

	if len(q.Select) > 0 {
		proj := bson.M{}
		for _, field := range q.Select {
			proj[field] = 1
		}
		opts.SetProjection(proj)
	}

	if sort := SortSpec(q); len(sort) > 0 {
		opts.SetSort(sort)
	}
	return opts
}

// list runs the shared filter/select/sort/paginate pipeline over a
// collection and returns the page of documents plus the total match count.
func list[T any](ctx context.Context, col *mongo.Collection, q *listing.Query) ([]T, int64, error) {
	filter := CompileFilter(q)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err, "counting documents")
	}

	cur, err := col.Find(ctx, filter, FindOptions(q))
	if err != nil {
		return nil, 0, translate(err, "finding documents")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, translate(err, "decoding documents")
	}
	return out, total, nil
}

// BootcampLookup joins the parent bootcamp's name and description onto a
// child document as bootcampInfo. Children of a deleted bootcamp pass
// through with the field unset.
func BootcampLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         BootcampsCollection,
			"localField":   "bootcamp",
			"foreignField": "_id",
			"pipeline": []bson.M{
				{"$project": bson.M{"name": 1, "description": 1}},
			},
			"as": "bootcampInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$bootcampInfo",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

// PopulatedPipeline compiles a query into an aggregation that pages the
// matching documents and runs BootcampLookup on each one.
func PopulatedPipeline(q *listing.Query) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: CompileFilter(q)}},
	}
	if sort := SortSpec(q); len(sort) > 0 {
		p = append(p, bson.D{{Key: "$sort", Value: sort}})
	}
	p = append(p,
		bson.D{{Key: "$skip", Value: int64(q.Skip())}},
		bson.D{{Key: "$limit", Value: int64(q.Limit)}},
	)
	p = append(p, BootcampLookup()...)
	if len(q.Select) > 0 {
		proj := bson.M{"bootcampInfo": 1}
		for _, field := range q.Select {
			proj[field] = 1
		}
		p = append(p, bson.D{{Key: "$project", Value: proj}})
	}
	return p
}

// listPopulated is list plus the bootcampInfo join, used by the
// course and review stores.
func listPopulated[T any](ctx context.Context, col *mongo.Collection, q *listing.Query) ([]T, int64, error) {
	filter := CompileFilter(q)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err, "counting documents")
	}

	cur, err := col.Aggregate(ctx, PopulatedPipeline(q))
	if err != nil {
		return nil, 0, translate(err, "aggregating documents")
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, translate(err, "decoding documents")
	}
	return out, total, nil
}
