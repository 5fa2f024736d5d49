package orderRepo

import (
	"context"
	"fmt"
	"time"

	"tripmart/database"
	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	coll := database.DB().Collection("orders")
	repo := &MongoOrderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tourist_id", Value: 1}}},
		{Keys: bson.D{{Key: "items.seller_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new order document.
func (r *MongoOrderRepo) Create(o *models.Order) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by ID, nil when absent.
func (r *MongoOrderRepo) GetByID(id string) (*models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var o models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&o); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	return &o, nil
}

// ListByTourist retrieves a tourist's orders, newest first.
func (r *MongoOrderRepo) ListByTourist(touristID string) ([]models.Order, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"tourist_id": touristID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for tourist %s: %w", touristID, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus writes a new order status.
func (r *MongoOrderRepo) UpdateStatus(id string, status models.OrderStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", id)
	}
	return nil
}

// CancelWithRefund marks the order cancelled, restocks every line and
// refunds the wallet in one transaction.
func (r *MongoOrderRepo) CancelWithRefund(id string) (float64, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	products := database.DB().Collection("products")
	users := database.DB().Collection("users")

	refund, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var o models.Order
		// Only a paid order can be cancelled; the filter doubles as the guard.
		filter := bson.M{"id": id, "status": models.OrderStatusPaid}
		update := bson.M{"$set": bson.M{"status": models.OrderStatusCancelled, "updated_at": time.Now()}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
		if err := r.coll.FindOneAndUpdate(sc, filter, update, opts).Decode(&o); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("order %s is not cancellable", id)
			}
			return nil, fmt.Errorf("failed to cancel order %s: %w", id, err)
		}

		for _, item := range o.Items {
			restock := bson.M{"$inc": bson.M{"stock": item.Quantity}}
			if _, err := products.UpdateOne(sc, bson.M{"id": item.ProductID}, restock); err != nil {
				return nil, fmt.Errorf("failed to restock product %s: %w", item.ProductID, err)
			}
		}

		credit := bson.M{"$inc": bson.M{"wallet_balance": o.Payable}}
		if _, err := users.UpdateOne(sc, bson.M{"id": o.TouristID}, credit); err != nil {
			return nil, fmt.Errorf("failed to refund tourist %s: %w", o.TouristID, err)
		}
		return o.Payable, nil
	})
	if err != nil {
		return 0, err
	}
	return refund.(float64), nil
}
