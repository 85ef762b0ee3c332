package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type NotificationRecorder interface {
	UpdateNotification(ctx context.Context, id string, n domain.Notification) error
}

// NotificationTask is one welcome e-mail being delivered in the background.
type NotificationTask struct {
	MemberID string

	done chan struct{}
	err  error
}

// Done is closed once delivery finished and the outcome was recorded.
func (t *NotificationTask) Done() <-chan struct{} {
	return t.done
}

// Err is the delivery error. Only meaningful after Done is closed.
func (t *NotificationTask) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx is done.
func (t *NotificationTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WelcomeNotifier mails new members and stores the outcome on the member.
type WelcomeNotifier struct {
	mailer    Mailer
	repo      NotificationRecorder
	storeName string
	timeout   time.Duration

	wg sync.WaitGroup
}

func NewWelcomeNotifier(mailer Mailer, repo NotificationRecorder, storeName string, timeout time.Duration) *WelcomeNotifier {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WelcomeNotifier{
		mailer:    mailer,
		repo:      repo,
		storeName: storeName,
		timeout:   timeout,
	}
}

func (n *WelcomeNotifier) Notify(member domain.Member) *NotificationTask {
	task := &NotificationTask{
		MemberID: member.ID,
		done:     make(chan struct{}),
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer close(task.done)

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		subject, body := n.welcome(member)
		task.err = n.mailer.Send(ctx, member.Email, subject, body)

		outcome := domain.Notification{Status: domain.NotificationSent}
		if task.err != nil {
			outcome = domain.Notification{Status: domain.NotificationFailed, Error: task.err.Error()}
			zap.L().Warn("welcome e-mail failed",
				zap.String("member_id", member.ID),
				zap.Error(task.err))
		}

		recordCtx, recordCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer recordCancel()
		if err := n.repo.UpdateNotification(recordCtx, member.ID, outcome); err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				zap.L().Debug("member removed before notification was recorded", zap.String("member_id", member.ID))
				return
			}
			zap.L().Error("failed to record notification outcome",
				zap.String("member_id", member.ID),
				zap.Error(err))
		}
	}()

	return task
}

// Wait blocks until every started task has finished.
func (n *WelcomeNotifier) Wait() {
	n.wg.Wait()
}

func (n *WelcomeNotifier) welcome(m domain.Member) (string, string) {
	subject := "Selamat datang di " + n.storeName
	body := fmt.Sprintf("Halo %s,\n\n"+
		"Terima kasih telah mendaftar sebagai member %s.\n"+
		"Nikmati diskon %d%% untuk setiap pembelian Anda.\n\n"+
		"Salam,\n%s\n", m.Name, n.storeName, m.Discount, n.storeName)
	return subject, body
}
