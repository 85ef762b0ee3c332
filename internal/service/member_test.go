package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/report"
)

func intPtr(v int) *int {
	return &v
}

func TestMemberService_RegisterSendsWelcome(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	mailer := &fakeMailer{}
	notifier := NewWelcomeNotifier(mailer, r.members, "Toko Baju Keren", time.Second)
	svc := NewMemberService(r.members, notifier, 0)

	member, task, err := svc.Register(ctx, MemberInput{Name: " Budi ", Phone: "0812", Email: "budi@example.com", Discount: intPtr(10)})
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "Budi", member.Name)
	assert.Equal(t, domain.NotificationPending, member.Notification.Status)

	require.NoError(t, task.Wait(ctx))
	notifier.Wait()

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "budi@example.com", sent[0].to)
	assert.Contains(t, sent[0].subject, "Toko Baju Keren")
	assert.Contains(t, sent[0].body, "10%")

	stored, err := svc.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationSent, stored.Notification.Status)
}

func TestMemberService_FailedWelcomeIsRecorded(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	mailer := &fakeMailer{err: errors.New("connection refused")}
	notifier := NewWelcomeNotifier(mailer, r.members, "Toko", time.Second)
	svc := NewMemberService(r.members, notifier, 5)

	member, task, err := svc.Register(ctx, MemberInput{Name: "Sari", Phone: "0813", Email: "sari@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 5, member.Discount)

	assert.EqualError(t, task.Wait(ctx), "connection refused")
	notifier.Wait()
	assert.EqualError(t, task.Err(), "connection refused")

	stored, err := svc.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationFailed, stored.Notification.Status)
	assert.Equal(t, "connection refused", stored.Notification.Error)
}

func TestMemberService_NoNotification(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	withoutNotifier := NewMemberService(r.members, nil, 0)
	member, task, err := withoutNotifier.Register(ctx, MemberInput{Name: "Andi", Phone: "1", Email: "andi@example.com"})
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.Equal(t, domain.NotificationNone, member.Notification.Status)

	notifier := NewWelcomeNotifier(&fakeMailer{}, r.members, "Toko", time.Second)
	withNotifier := NewMemberService(r.members, notifier, 0)
	member, task, err = withNotifier.Register(ctx, MemberInput{Name: "Rina", Phone: "2"})
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.Equal(t, domain.NotificationNone, member.Notification.Status)

	_, _, err = withNotifier.Register(ctx, MemberInput{Name: "X", Phone: "3", Discount: intPtr(101)})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestMemberService_UpdateAndSearch(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := NewMemberService(r.members, nil, 0)

	budi, _, err := svc.Register(ctx, MemberInput{Name: "Budi Santoso", Phone: "081234", Discount: intPtr(10)})
	require.NoError(t, err)
	_, _, err = svc.Register(ctx, MemberInput{Name: "Sari", Phone: "089999"})
	require.NoError(t, err)

	found, err := svc.List(ctx, "budi")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, budi.ID, found[0].ID)

	found, err = svc.List(ctx, "0899")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Sari", found[0].Name)

	updated, err := svc.Update(ctx, budi.ID, MemberInput{Name: "Budi S.", Phone: "081234"})
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", updated.Name)
	assert.Equal(t, 10, updated.Discount)

	_, err = svc.Update(ctx, budi.ID, MemberInput{Name: "Budi", Discount: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = svc.Update(ctx, "ghost", MemberInput{Name: "x"})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemberService_DeleteKeepsTransactions(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)
	members := NewMemberService(r.members, nil, 0)
	reports := NewReportService(r.transactions, r.members, time.UTC, 5)
	seedProduct(t, r, "p1", "Kaos", 50000, domain.Stock{domain.SizeM: 5})
	seedMember(t, r, "m1", "Budi", 10)

	_, err := carts.Add(ctx, cashier.ID, "p1", "M", 1)
	require.NoError(t, err)
	tx, err := checkout.Checkout(ctx, cashier, CheckoutInput{CustomerType: "Member", MemberID: "m1"})
	require.NoError(t, err)

	require.NoError(t, members.Delete(ctx, "m1"))
	assert.ErrorIs(t, members.Delete(ctx, "m1"), ErrMemberNotFound)

	stored, err := r.transactions.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "m1", *stored.MemberID)
	assert.Equal(t, "5000", stored.Discount.String())

	got, err := reports.Generate(ctx, ReportQuery{Period: report.PeriodDay})
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, domain.CustomerNonMember, got.Rows[0].MemberStatus)
	assert.Equal(t, "Non-Member", got.Rows[0].MemberName)
}
