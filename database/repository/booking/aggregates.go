// File: database/repository/booking/aggregates.go
//
// Rating aggregation pipelines. Ratings live on attended bookings with a
// non-zero rating; guide ratings join through itineraries because bookings
// do not store the guide directly.
package bookingRepo

import (
	"fmt"
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsFindNewestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

// ratedMatch is the base filter every rating pipeline starts from.
func ratedMatch(bookingType models.BookingType) bson.M {
	return bson.M{
		"booking_type": bookingType,
		"status":       models.BookingStatusAttended,
		"rating":       bson.M{"$gt": 0},
	}
}

// guideStages joins bookings to the guide's itineraries and filters them.
func guideStages(guideID string) []bson.D {
	return []bson.D{
		{{Key: "$match", Value: ratedMatch(models.BookingTypeItinerary)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "itineraries",
			"localField":   "item_id",
			"foreignField": "id",
			"as":           "item",
		}}},
		{{Key: "$unwind", Value: "$item"}},
		{{Key: "$match", Value: bson.M{"item.created_by": guideID}}},
	}
}

var summaryTail = []bson.D{
	{{Key: "$group", Value: bson.M{
		"_id":   nil,
		"avg":   bson.M{"$avg": "$rating"},
		"count": bson.M{"$sum": 1},
	}}},
	{{Key: "$project", Value: bson.M{
		"averageRating": bson.M{"$round": bson.A{"$avg", 1}},
		"totalRatings":  "$count",
	}}},
}

func (r *MongoBookingRepo) runSummary(pipeline mongo.Pipeline) (*models.RatingSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("rating aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode rating summary: %w", err)
	}
	// No matching bookings is a valid result, never an error.
	if len(results) == 0 {
		return &models.RatingSummary{}, nil
	}
	return &results[0], nil
}

// Summary computes {averageRating, totalRatings} for one bookable entity.
func (r *MongoBookingRepo) Summary(bookingType models.BookingType, itemID string) (*models.RatingSummary, error) {
	match := ratedMatch(bookingType)
	match["item_id"] = itemID

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, summaryTail...)
	return r.runSummary(pipeline)
}

// GuideSummary computes the rating aggregate across all of a guide's
// itineraries.
func (r *MongoBookingRepo) GuideSummary(guideID string) (*models.RatingSummary, error) {
	pipeline := mongo.Pipeline(guideStages(guideID))
	pipeline = append(pipeline, summaryTail...)
	return r.runSummary(pipeline)
}

// Page returns one page of individual rating+review records, newest first,
// joined with the reviewer's username, plus the overall summary.
func (r *MongoBookingRepo) Page(bookingType models.BookingType, itemID string, page, perPage int) (*models.RatingPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	match := ratedMatch(bookingType)
	match["item_id"] = itemID

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
		bson.D{{Key: "$skip", Value: (page - 1) * perPage}},
		bson.D{{Key: "$limit", Value: perPage}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "tourist_id",
			"foreignField": "id",
			"as":           "tourist",
		}}},
		bson.D{{Key: "$unwind", Value: "$tourist"}},
		bson.D{{Key: "$project", Value: bson.M{
			"id":         1,
			"rating":     1,
			"review":     1,
			"updated_at": 1,
			"username":   "$tourist.username",
		}}},
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("rating page aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.RatingEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode rating page: %w", err)
	}

	summary, err := r.Summary(bookingType, itemID)
	if err != nil {
		return nil, err
	}

	return &models.RatingPage{
		Summary: *summary,
		Entries: entries,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// GuideDistribution buckets a guide's rating counts into the fixed keys 1-5.
func (r *MongoBookingRepo) GuideDistribution(guideID string) (models.RatingDistribution, error) {
	pipeline := mongo.Pipeline(guideStages(guideID))
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.M{
		"_id":   bson.M{"$round": bson.A{"$rating", 0}},
		"count": bson.M{"$sum": 1},
	}}})

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("rating distribution aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Bucket float64 `bson:"_id"`
		Count  int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rating distribution: %w", err)
	}

	dist := models.RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		bucket := int(row.Bucket)
		if bucket >= 1 && bucket <= 5 {
			dist[bucket] += row.Count
		}
	}
	return dist, nil
}
