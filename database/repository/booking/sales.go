package bookingRepo

import (
	"fmt"
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// realizedStatuses are the booking statuses that count as revenue.
var realizedStatuses = bson.A{
	models.BookingStatusConfirmed,
	models.BookingStatusCompleted,
	models.BookingStatusAttended,
}

var salesProject = bson.D{{Key: "$project", Value: bson.M{
	"id":         1,
	"item_id":    1,
	"item_name":  1,
	"quantity":   1,
	"status":     1,
	"created_at": 1,
	"gross":      "$total_price",
}}}

func (r *MongoBookingRepo) runSales(pipeline mongo.Pipeline) ([]models.SalesLineItem, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sales aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []models.SalesLineItem
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode sales lines: %w", err)
	}
	return lines, nil
}

// SalesForItems lists realized sales lines for the given items.
func (r *MongoBookingRepo) SalesForItems(bookingType models.BookingType, itemIDs []string) ([]models.SalesLineItem, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"booking_type": bookingType,
			"item_id":      bson.M{"$in": itemIDs},
			"status":       bson.M{"$in": realizedStatuses},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		salesProject,
	}
	return r.runSales(pipeline)
}

// SalesByItemName groups realized sales for the given items by item name.
func (r *MongoBookingRepo) SalesByItemName(bookingType models.BookingType, itemIDs []string) ([]models.ItemSales, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"booking_type": bookingType,
			"item_id":      bson.M{"$in": itemIDs},
			"status":       bson.M{"$in": realizedStatuses},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$item_name",
			"gross": bson.M{"$sum": "$total_price"},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "gross", Value: -1}}}},
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sales breakdown aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.ItemSales
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode sales breakdown: %w", err)
	}
	return rows, nil
}

// AllSales lists realized sales lines platform-wide (admin report).
func (r *MongoBookingRepo) AllSales() ([]models.SalesLineItem, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": bson.M{"$in": realizedStatuses}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		salesProject,
	}
	return r.runSales(pipeline)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tourist_id", Value: 1}}},
		{Keys: bson.D{{Key: "item_id", Value: 1}, {Key: "booking_type", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "notification_sent", Value: 1}, {Key: "booking_date", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
