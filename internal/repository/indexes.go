package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. The cart
// uniqueness index is load-bearing: AddOrIncrement's upsert depends on
// it to rule out duplicate (owner, medicine) rows under concurrency.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	cart := &mongoCartRepository{collection: db.Collection("cart_items")}
	if err := cart.CreateIndexes(ctx); err != nil {
		return err
	}

	orders := &mongoOrderRepository{collection: db.Collection("orders")}
	if err := orders.CreateIndexes(ctx); err != nil {
		return err
	}

	catalog := &mongoCatalogRepository{
		medicines:  db.Collection("medicines"),
		categories: db.Collection("categories"),
	}
	return catalog.CreateIndexes(ctx)
}
