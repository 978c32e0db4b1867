package audit

import "context"

const anonymousActor = "anonim"

type actorKey struct{}

// WithActor isteği yapan admin'i context'e ekler.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return anonymousActor
}
