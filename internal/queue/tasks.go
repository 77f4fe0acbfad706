package queue

import (
	"encoding/json"

	"github.com/prostore-go/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderExpire 未支付订单超时清理任务
	TaskOrderExpire = constants.TaskOrderExpire
	// TaskOrderExpireSweep 未支付订单兜底清扫任务（周期触发）
	TaskOrderExpireSweep = constants.TaskOrderExpireSweep
	// TaskOrderPaidEmail 支付成功邮件通知任务
	TaskOrderPaidEmail = constants.TaskOrderPaidEmail
)

// OrderExpirePayload 超时清理任务载荷
type OrderExpirePayload struct {
	OrderID uint `json:"order_id"`
}

// OrderPaidEmailPayload 支付成功邮件任务载荷
type OrderPaidEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderExpireTask 创建超时清理任务
func NewOrderExpireTask(payload OrderExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderExpire, body), nil
}

// NewOrderExpireSweepTask 创建兜底清扫任务，无载荷
func NewOrderExpireSweepTask() *asynq.Task {
	return asynq.NewTask(TaskOrderExpireSweep, nil)
}

// NewOrderPaidEmailTask 创建支付成功邮件任务
func NewOrderPaidEmailTask(payload OrderPaidEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaidEmail, body), nil
}
