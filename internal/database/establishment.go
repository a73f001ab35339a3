package repository

import (
	"AgentsFood/entity"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetEstablishment loads one establishment with its active categories and
// available products, both ordered by display_order.
func (m *MongoDB) GetEstablishment(ctx context.Context, id string) (*entity.Establishment, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)

	var est entity.Establishment
	err = db.Collection(establishmentsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&est)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	est.Categories, err = m.activeCategories(ctx, db, id)
	if err != nil {
		return nil, err
	}
	est.Products, err = m.availableProducts(ctx, db, id)
	if err != nil {
		return nil, err
	}

	return &est, nil
}

// GetEstablishmentByPhoneNumberID resolves the tenant behind a WhatsApp
// phone number id from a webhook payload.
func (m *MongoDB) GetEstablishmentByPhoneNumberID(ctx context.Context, phoneNumberID string) (*entity.Establishment, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var est entity.Establishment
	err = connection.Database(m.database).Collection(establishmentsCollection).
		FindOne(ctx, bson.D{{Key: "whatsapp_phone_number_id", Value: phoneNumberID}}).Decode(&est)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	return &est, nil
}

func (m *MongoDB) activeCategories(ctx context.Context, db *mongo.Database, establishmentID string) ([]entity.Category, error) {
	filter := bson.D{{Key: "establishment_id", Value: establishmentID}, {Key: "active", Value: true}}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})

	cursor, err := db.Collection(categoriesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	var categories []entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return categories, nil
}

func (m *MongoDB) availableProducts(ctx context.Context, db *mongo.Database, establishmentID string) ([]entity.Product, error) {
	filter := bson.D{{Key: "establishment_id", Value: establishmentID}, {Key: "available", Value: true}}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})

	cursor, err := db.Collection(productsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return products, nil
}
