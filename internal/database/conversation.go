package repository

import (
	"AgentsFood/entity"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetConversationByChannel looks a conversation up by its composite key
// {channel_id, establishment_id}. Returns nil, nil on a miss.
func (m *MongoDB) GetConversationByChannel(ctx context.Context, channelID, establishmentID string) (*entity.Conversation, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{{Key: "channel_id", Value: channelID}, {Key: "establishment_id", Value: establishmentID}}

	var conv entity.Conversation
	err = collection.FindOne(ctx, filter).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	return &conv, nil
}

// GetConversation looks a conversation up by id. Returns nil, nil on a miss.
func (m *MongoDB) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)

	var conv entity.Conversation
	err = collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&conv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	return &conv, nil
}

func (m *MongoDB) InsertConversation(ctx context.Context, conv *entity.Conversation) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	_, err = collection.InsertOne(ctx, conv)
	if err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

// SaveContext persists a merged conversation context and bumps
// last_message_at.
func (m *MongoDB) SaveContext(ctx context.Context, id string, context entity.ConversationContext, lastMessageAt time.Time) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	update := bson.M{"$set": bson.M{
		"context":         context,
		"last_message_at": lastMessageAt,
	}}

	_, err = collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	return nil
}

// SaveCurrentOrder persists the whole order object; a nil order clears the
// cart.
func (m *MongoDB) SaveCurrentOrder(ctx context.Context, id string, order *entity.CurrentOrder) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)

	var update bson.M
	if order == nil {
		update = bson.M{"$unset": bson.M{"current_order": ""}}
	} else {
		update = bson.M{"$set": bson.M{"current_order": order}}
	}

	_, err = collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	return nil
}

// SaveCustomerName refreshes the customer display name picked up from a
// webhook contact profile.
func (m *MongoDB) SaveCustomerName(ctx context.Context, id, name string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	update := bson.M{"$set": bson.M{"customer_name": name}}

	_, err = collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	return nil
}

// ListConversations pages through an establishment's conversations, most
// recent exchange first. Also returns the total count for pagination.
func (m *MongoDB) ListConversations(ctx context.Context, establishmentID string, page, limit int) ([]entity.Conversation, int64, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{{Key: "establishment_id", Value: establishmentID}}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb count error: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_message_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb find error: %w", err)
	}

	var conversations []entity.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, 0, fmt.Errorf("mongodb decode error: %w", err)
	}

	return conversations, total, nil
}

// CountConversations counts an establishment's conversations, optionally
// only those with an exchange after since. An empty establishment id
// counts across all establishments.
func (m *MongoDB) CountConversations(ctx context.Context, establishmentID string, since time.Time) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(conversationsCollection)
	filter := bson.D{}
	if establishmentID != "" {
		filter = append(filter, bson.E{Key: "establishment_id", Value: establishmentID})
	}
	if !since.IsZero() {
		filter = append(filter, bson.E{Key: "last_message_at", Value: bson.D{{Key: "$gte", Value: since}}})
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongodb count error: %w", err)
	}
	return total, nil
}
