package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey       ContextKey = "app"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	UserKey        ContextKey = "user"
	SessionKey     ContextKey = "session"
	GuestKey       ContextKey = "guest"
	CommitHooksKey ContextKey = "commitHooks"
	RequestStart   ContextKey = "requestStart"
)

var Validate = validator.New()
