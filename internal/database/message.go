package repository

import (
	"AgentsFood/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) SaveMessage(ctx context.Context, message entity.Message) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(messagesCollection)
	_, err = collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

// GetMessages returns a conversation's log in chronological order.
func (m *MongoDB) GetMessages(ctx context.Context, conversationID string) ([]entity.Message, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(messagesCollection)
	filter := bson.D{{Key: "conversation_id", Value: conversationID}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}

	var messages []entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return messages, nil
}

// CountMessages counts all message rows across an establishment's
// conversations. An empty establishment id counts everything.
func (m *MongoDB) CountMessages(ctx context.Context, establishmentID string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	db := connection.Database(m.database)

	if establishmentID == "" {
		total, err := db.Collection(messagesCollection).CountDocuments(ctx, bson.D{})
		if err != nil {
			return 0, fmt.Errorf("mongodb count error: %w", err)
		}
		return total, nil
	}

	cursor, err := db.Collection(conversationsCollection).Find(ctx,
		bson.D{{Key: "establishment_id", Value: establishmentID}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return 0, fmt.Errorf("mongodb find error: %w", err)
	}

	var ids []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &ids); err != nil {
		return 0, fmt.Errorf("mongodb decode error: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	conversationIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		conversationIDs = append(conversationIDs, id.ID)
	}

	total, err := db.Collection(messagesCollection).CountDocuments(ctx,
		bson.D{{Key: "conversation_id", Value: bson.D{{Key: "$in", Value: conversationIDs}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("mongodb count error: %w", err)
	}
	return total, nil
}
