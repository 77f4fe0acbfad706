package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/provider"
	"github.com/prostore-go/internal/queue"
	"github.com/prostore-go/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderExpire, c.handleOrderExpire)
	mux.HandleFunc(queue.TaskOrderExpireSweep, c.handleOrderExpireSweep)
	mux.HandleFunc(queue.TaskOrderPaidEmail, c.handleOrderPaidEmail)
}

func (c *Consumer) handleOrderExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_expire_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	if err := c.OrderService.ExpireUnpaidOrder(payload.OrderID); err != nil {
		logger.Warnw("worker_order_expire_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

// handleOrderExpireSweep 周期兜底：逐单延迟任务在队列宕机期间会丢，
// 这里按创建时间整体扫一遍仍未支付的过期订单。
func (c *Consumer) handleOrderExpireSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	if _, err := c.OrderService.ExpireStaleOrders(); err != nil {
		logger.Warnw("worker_order_expire_sweep_failed", "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderPaidEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderPaidEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_paid_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_paid_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_paid_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_paid_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if !order.IsPaid {
		logger.Debugw("worker_order_paid_email_skip_unpaid", "order_id", order.ID)
		return nil
	}

	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_paid_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_order_paid_email_skip_empty_receiver", "order_id", order.ID)
		return nil
	}

	paidAt := ""
	if order.PaidAt != nil {
		paidAt = order.PaidAt.Format("2006-01-02 15:04:05")
	}
	itemLines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		itemLines = append(itemLines, fmt.Sprintf("%s x%d @ %s", item.Name, item.Quantity, item.Price.String()))
	}

	err = c.EmailService.SendOrderPaidEmail(user.Email, service.OrderPaidEmailInput{
		OrderID:    order.ID,
		UserName:   user.Name,
		ItemsPrice: order.ItemsPrice,
		TotalPrice: order.TotalPrice,
		PaidAt:     paidAt,
		ItemLines:  itemLines,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailDisabled) || errors.Is(err, service.ErrEmailNotConfigured) {
			logger.Debugw("worker_order_paid_email_skip_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_paid_email_send_failed",
			"order_id", order.ID,
			"receiver_email", user.Email,
			"error", err,
		)
		return err
	}
	return nil
}
