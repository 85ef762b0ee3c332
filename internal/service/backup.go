package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tokobajukeren/pos-api/internal/backup"
	"github.com/tokobajukeren/pos-api/internal/repository"
)

var (
	ErrMalformedBackup          = backup.ErrMalformedBackup
	ErrInvalidBackupShape       = backup.ErrInvalidBackupShape
	ErrUnsupportedBackupVersion = backup.ErrUnsupportedBackupVersion
	ErrInvalidBackupRecord      = backup.ErrInvalidBackupRecord
)

type DatasetStore interface {
	ReplaceAll(ctx context.Context, data repository.Dataset) error
	DeleteAll(ctx context.Context) error
}

type CartResetter interface {
	ResetAll()
}

// RestoreResult counts what a restore loaded.
type RestoreResult struct {
	Products     int `json:"products"`
	Members      int `json:"members"`
	Transactions int `json:"transactions"`
}

type BackupService struct {
	products     ProductLister
	members      MemberLister
	transactions TransactionLister
	dataset      DatasetStore
	carts        CartResetter
	now          func() time.Time
}

func NewBackupService(products ProductLister, members MemberLister, transactions TransactionLister, dataset DatasetStore, carts CartResetter) *BackupService {
	return &BackupService{
		products:     products,
		members:      members,
		transactions: transactions,
		dataset:      dataset,
		carts:        carts,
		now:          time.Now,
	}
}

func (s *BackupService) Export(ctx context.Context) (backup.Document, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return backup.Document{}, fmt.Errorf("s.products.FindAll -> %w", err)
	}
	members, err := s.members.FindAll(ctx, "")
	if err != nil {
		return backup.Document{}, fmt.Errorf("s.members.FindAll -> %w", err)
	}
	transactions, err := s.transactions.FindAll(ctx)
	if err != nil {
		return backup.Document{}, fmt.Errorf("s.transactions.FindAll -> %w", err)
	}

	return backup.New(products, members, transactions, s.now().UTC()), nil
}

// ExportJSON is Export encoded with two-space indentation.
func (s *BackupService) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent -> %w", err)
	}

	return data, nil
}

// Restore replaces all products, members and transactions with the backup.
// A backup that fails validation changes nothing. Every open cart is dropped
// afterwards since it may point at products that are gone.
func (s *BackupService) Restore(ctx context.Context, data []byte) (RestoreResult, error) {
	doc, err := backup.Decode(data)
	if err != nil {
		return RestoreResult{}, err
	}

	err = s.dataset.ReplaceAll(ctx, repository.Dataset{
		Products:     doc.DomainProducts(),
		Members:      doc.DomainMembers(),
		Transactions: doc.DomainTransactions(),
	})
	if err != nil {
		return RestoreResult{}, fmt.Errorf("s.dataset.ReplaceAll -> %w", err)
	}

	s.carts.ResetAll()

	result := RestoreResult{
		Products:     len(doc.Products),
		Members:      len(doc.Members),
		Transactions: len(doc.Transactions),
	}
	zap.L().Info("backup restored",
		zap.Int("version", doc.Version),
		zap.Int("products", result.Products),
		zap.Int("members", result.Members),
		zap.Int("transactions", result.Transactions))

	return result, nil
}

// Reset deletes every product, member and transaction. User accounts stay.
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.dataset.DeleteAll(ctx); err != nil {
		return fmt.Errorf("s.dataset.DeleteAll -> %w", err)
	}

	s.carts.ResetAll()

	zap.L().Warn("all store data was reset")

	return nil
}
