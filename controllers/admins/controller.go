package admins

import (
	"github.com/ashitoshh01/do-or-due-sub000/notifier"

	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Controller carries the shared handles for all admin console endpoints.
// RDB backs the login lockout counters and may be nil.
type Controller struct {
	DB   *gorm.DB
	Push *notifier.Client
	RDB  *redis.Client
}

func NewController(db *gorm.DB, push *notifier.Client, rdb *redis.Client) *Controller {
	return &Controller{DB: db, Push: push, RDB: rdb}
}
