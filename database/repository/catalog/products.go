package catalogRepo

import (
	"fmt"
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct inserts a new product document.
func (r *MongoCatalogRepo) CreateProduct(p *models.Product) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	return insertOne(r.db.Collection(collProducts), p)
}

// GetProduct retrieves a product by ID, nil when absent.
func (r *MongoCatalogRepo) GetProduct(id string) (*models.Product, error) {
	var p models.Product
	found, err := findByID(r.db.Collection(collProducts), id, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// ListProductsBySeller lists a seller's products.
func (r *MongoCatalogRepo) ListProductsBySeller(sellerID string) ([]models.Product, error) {
	var out []models.Product
	err := listByField(r.db.Collection(collProducts), "seller_id", sellerID, &out)
	return out, err
}

// DecrementStock takes qty units off the shelf. The filter only matches
// while stock covers qty; returns the remaining stock, or -1 when refused.
func (r *MongoCatalogRepo) DecrementStock(id string, qty int) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "archived": false, "stock": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	err := r.db.Collection(collProducts).FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return -1, nil
		}
		return -1, fmt.Errorf("failed to decrement stock for product %s: %w", id, err)
	}
	return p.Stock, nil
}

// IncrementStock restocks qty units (order cancellation).
func (r *MongoCatalogRepo) IncrementStock(id string, qty int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"stock": qty},
		"$set": bson.M{"updated_at": time.Now()},
	}
	result, err := r.db.Collection(collProducts).UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to restock product %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("product with id %s not found", id)
	}
	return nil
}
