package usecase_test

import (
	"context"
	"time"

	"github.com/tu-usuario/supplychain-pro/internal/application/usecase"
	"github.com/tu-usuario/supplychain-pro/internal/domain"
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
	"github.com/tu-usuario/supplychain-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Replican el contrato de
// los adaptadores postgres: (nil, nil) en lecturas sin resultado y la misma
// semántica de filtrado de candidatas/solapamiento.
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

type fakeSiteRepo struct {
	sites     map[string]*entity.Site
	overrides map[string]*entity.SiteProductOverride // clave: siteID+"/"+productID
}

func (f *fakeSiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	return f.sites[id], nil
}

func (f *fakeSiteRepo) GetOverride(_ context.Context, siteID, productID string) (*entity.SiteProductOverride, error) {
	return f.overrides[siteID+"/"+productID], nil
}

type fakeRuleRepo struct {
	rules map[string]*entity.DistributionRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]*entity.DistributionRule)}
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *entity.DistributionRule) error {
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule *entity.DistributionRule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return domain.ErrRuleNotFound
	}
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRuleRepo) Deactivate(_ context.Context, id string, at time.Time) error {
	r, ok := f.rules[id]
	if !ok {
		return domain.ErrRuleNotFound
	}
	r.IsActive = false
	r.UpdatedAt = at
	return nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id string) (*entity.DistributionRule, error) {
	return f.rules[id], nil
}

func (f *fakeRuleRepo) List(_ context.Context, filter repository.RuleListFilter, limit, offset int) ([]*entity.DistributionRule, error) {
	var out []*entity.DistributionRule
	for _, r := range f.rules {
		if filter.OnlyActive && !r.IsActive {
			continue
		}
		if filter.ProductID != nil && (r.ProductID == nil || *r.ProductID != *filter.ProductID) {
			continue
		}
		if filter.SiteType != nil && (r.SiteType == nil || *r.SiteType != *filter.SiteType) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRuleRepo) ListCandidates(_ context.Context, productID, siteType *string, onDate time.Time) ([]*entity.DistributionRule, error) {
	var out []*entity.DistributionRule
	for _, r := range f.rules {
		if !r.IsActive || !r.CoversDate(onDate) {
			continue
		}
		if r.ProductID != nil && (productID == nil || *r.ProductID != *productID) {
			continue
		}
		if r.SiteType != nil && (siteType == nil || *r.SiteType != *siteType) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRuleRepo) FindOverlapping(_ context.Context, rule *entity.DistributionRule, excludeID string) (*entity.DistributionRule, error) {
	for _, r := range f.rules {
		if r.ID == excludeID || !r.IsActive {
			continue
		}
		if r.SameScope(rule) && r.WindowOverlaps(rule) {
			return r, nil
		}
	}
	return nil, nil
}

type fakeTxRepo struct {
	transactions []*entity.RevenueTransaction
}

func (f *fakeTxRepo) Create(_ context.Context, tx *entity.RevenueTransaction) error {
	cp := *tx
	f.transactions = append(f.transactions, &cp)
	return nil
}

func (f *fakeTxRepo) GetByID(_ context.Context, id string) (*entity.RevenueTransaction, error) {
	for _, tx := range f.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (f *fakeTxRepo) List(_ context.Context, filter repository.TransactionFilter, limit, offset int) ([]*entity.RevenueTransaction, int, error) {
	var out []*entity.RevenueTransaction
	for _, tx := range f.transactions {
		if filter.ProductID != nil && tx.ProductID != *filter.ProductID {
			continue
		}
		if filter.SiteID != nil && (tx.SiteID == nil || *tx.SiteID != *filter.SiteID) {
			continue
		}
		out = append(out, tx)
	}
	return out, len(out), nil
}

func (f *fakeTxRepo) Summary(_ context.Context, bucket string, from, to time.Time) ([]repository.SummaryBucket, error) {
	return nil, nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Append(_ context.Context, log *entity.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

// fakeTxRunner ejecuta los callbacks directamente sobre los fakes.
type fakeTxRunner struct {
	ruleRepo  *fakeRuleRepo
	txRepo    *fakeTxRepo
	auditRepo *fakeAuditRepo
}

func (f *fakeTxRunner) RunLedger(ctx context.Context, fn func(
	txRepo repository.RevenueTransactionRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(f.txRepo, f.auditRepo)
}

func (f *fakeTxRunner) RunRules(ctx context.Context, fn func(
	ruleRepo repository.DistributionRuleRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(f.ruleRepo, f.auditRepo)
}

var _ usecase.TxRunner = (*fakeTxRunner)(nil)
