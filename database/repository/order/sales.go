package orderRepo

import (
	"fmt"
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// realizedStatuses are the order statuses that count as revenue.
var realizedStatuses = bson.A{
	models.OrderStatusPaid,
	models.OrderStatusDelivered,
}

// lineStages unwinds order items into one sales line per item.
func lineStages(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": bson.M{"$in": realizedStatuses}}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$project", Value: bson.M{
			"id":         1,
			"item_id":    "$items.product_id",
			"item_name":  "$items.name",
			"quantity":   "$items.quantity",
			"status":     1,
			"created_at": 1,
			"gross":      bson.M{"$multiply": bson.A{"$items.unit_price", "$items.quantity"}},
		}}},
	}
}

func (r *MongoOrderRepo) runSales(pipeline mongo.Pipeline) ([]models.SalesLineItem, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("order sales aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []models.SalesLineItem
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode order sales lines: %w", err)
	}
	return lines, nil
}

// SellerSales lists realized order lines for one seller's products.
func (r *MongoOrderRepo) SellerSales(sellerID string) ([]models.SalesLineItem, error) {
	return r.runSales(lineStages(bson.M{"items.seller_id": sellerID}))
}

// SellerSalesByItemName groups a seller's realized sales by product name.
func (r *MongoOrderRepo) SellerSalesByItemName(sellerID string) ([]models.ItemSales, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": bson.M{"$in": realizedStatuses}}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$match", Value: bson.M{"items.seller_id": sellerID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$items.name",
			"gross": bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.unit_price", "$items.quantity"}}},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "gross", Value: -1}}}},
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("seller sales breakdown failed: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.ItemSales
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode seller sales breakdown: %w", err)
	}
	return rows, nil
}

// AllSales lists realized order lines platform-wide (admin report).
func (r *MongoOrderRepo) AllSales() ([]models.SalesLineItem, error) {
	return r.runSales(lineStages(bson.M{}))
}
