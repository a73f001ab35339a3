package repository

import (
	"AgentsFood/entity"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAgentConfig returns the agent configuration for an establishment, or
// nil if none was created yet.
func (m *MongoDB) GetAgentConfig(ctx context.Context, establishmentID string) (*entity.AgentConfig, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(agentConfigsCollection)
	filter := bson.D{{Key: "establishment_id", Value: establishmentID}}

	var cfg entity.AgentConfig
	err = collection.FindOne(ctx, filter).Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, m.findError(err)
	}

	return &cfg, nil
}
