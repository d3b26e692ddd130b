package interfaces

import (
	"context"

	"github.com/kizmotek/linearflow/pkg/domain/model"
)

// ChatClient defines operations for posting to the chat platform
type ChatClient interface {
	// SendEmbed fetches the channel by id and posts a rich message into it
	SendEmbed(ctx context.Context, channelID string, embed *model.NotificationEmbed) error
}
