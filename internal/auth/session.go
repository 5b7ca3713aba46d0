package auth

import "context"

// Session - явный контекст запроса: кто и в каком домохозяйстве.
// Создаётся middleware на каждый запрос, глобального состояния нет.
type Session struct {
	Email    string
	HouseKey string
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
