package accounts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// seedAccount is one node of the standard chart. ParentCode refers to another
// seed by code and is resolved after all nodes exist.
type seedAccount struct {
	Code       string
	Name       string
	RootType   RootType
	IsGroup    bool
	ParentCode string
}

// Seeder bootstraps the standard chart of accounts for a tenant. Safe to
// re-run: existing codes are fetched instead of created, and parents are
// re-linked on every invocation.
type Seeder struct {
	repo   Repository
	logger *slog.Logger
}

func NewSeeder(repo Repository, logger *slog.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// SeedStandardChart inserts the standard chart in two passes: pass one
// creates or fetches every node by code, pass two wires parent references
// using the map built in pass one. A seed naming an unknown parent code is
// logged and skipped rather than failing the whole run.
func (s *Seeder) SeedStandardChart(ctx context.Context, tenantID uuid.UUID, company string) (map[string]Account, error) {
	seeds := standardChart()
	created := make(map[string]Account, len(seeds))

	for _, seed := range seeds {
		existing, err := s.repo.GetByCode(ctx, tenantID, seed.Code)
		if err == nil {
			created[seed.Code] = existing
			continue
		}
		if !errors.Is(err, shared.ErrAccountNotFound) {
			return nil, err
		}
		account, err := s.repo.Create(ctx, Account{
			ID:       uuid.New(),
			TenantID: tenantID,
			Code:     seed.Code,
			Name:     seed.Name,
			RootType: seed.RootType,
			IsGroup:  seed.IsGroup,
		})
		if errors.Is(err, shared.ErrDuplicateCode) {
			// Lost a race with a concurrent seeding run; the row exists now.
			account, err = s.repo.GetByCode(ctx, tenantID, seed.Code)
		}
		if err != nil {
			return nil, err
		}
		created[seed.Code] = account
	}

	for _, seed := range seeds {
		if seed.ParentCode == "" {
			continue
		}
		parent, ok := created[seed.ParentCode]
		if !ok {
			s.logger.Warn("seed references unknown parent code",
				slog.String("code", seed.Code),
				slog.String("parent_code", seed.ParentCode),
				slog.String("company", company))
			continue
		}
		child := created[seed.Code]
		if child.ParentID != nil && *child.ParentID == parent.ID {
			continue
		}
		if err := s.repo.SetParent(ctx, tenantID, child.ID, parent.ID); err != nil {
			return nil, err
		}
		pid := parent.ID
		child.ParentID = &pid
		created[seed.Code] = child
	}

	s.logger.Info("standard chart seeded",
		slog.String("tenant", tenantID.String()),
		slog.String("company", company),
		slog.Int("accounts", len(created)))
	return created, nil
}

func standardChart() []seedAccount {
	return []seedAccount{
		{Code: "1000", Name: "Assets", RootType: RootTypeAsset, IsGroup: true},
		{Code: "1100", Name: "Current Assets", RootType: RootTypeAsset, IsGroup: true, ParentCode: "1000"},
		{Code: "1110", Name: "Cash", RootType: RootTypeAsset, ParentCode: "1100"},
		{Code: "1120", Name: "Bank", RootType: RootTypeAsset, ParentCode: "1100"},
		{Code: "1130", Name: "Accounts Receivable", RootType: RootTypeAsset, ParentCode: "1100"},
		{Code: "1140", Name: "Stock In Hand", RootType: RootTypeAsset, ParentCode: "1100"},
		{Code: "1150", Name: "Securities and Deposits", RootType: RootTypeAsset, ParentCode: "1100"},
		{Code: "1160", Name: "Loans and Advances", RootType: RootTypeAsset, ParentCode: "1100"},
		{Code: "1200", Name: "Fixed Assets", RootType: RootTypeAsset, IsGroup: true, ParentCode: "1000"},
		{Code: "1210", Name: "Buildings", RootType: RootTypeAsset, ParentCode: "1200"},
		{Code: "1220", Name: "Plant and Machinery", RootType: RootTypeAsset, ParentCode: "1200"},
		{Code: "1230", Name: "Furniture and Fixtures", RootType: RootTypeAsset, ParentCode: "1200"},
		{Code: "1240", Name: "Office Equipment", RootType: RootTypeAsset, ParentCode: "1200"},
		{Code: "1250", Name: "Vehicles", RootType: RootTypeAsset, ParentCode: "1200"},
		{Code: "1260", Name: "Accumulated Depreciation", RootType: RootTypeAsset, ParentCode: "1200"},
		{Code: "1300", Name: "Investments", RootType: RootTypeAsset, ParentCode: "1000"},
		{Code: "1400", Name: "Temporary Accounts", RootType: RootTypeAsset, IsGroup: true, ParentCode: "1000"},
		{Code: "1410", Name: "Temporary Opening", RootType: RootTypeAsset, ParentCode: "1400"},
		{Code: "2000", Name: "Liabilities", RootType: RootTypeLiability, IsGroup: true},
		{Code: "2100", Name: "Current Liabilities", RootType: RootTypeLiability, IsGroup: true, ParentCode: "2000"},
		{Code: "2110", Name: "Accounts Payable", RootType: RootTypeLiability, ParentCode: "2100"},
		{Code: "2120", Name: "Duties and Taxes", RootType: RootTypeLiability, ParentCode: "2100"},
		{Code: "2130", Name: "Payroll Payable", RootType: RootTypeLiability, ParentCode: "2100"},
		{Code: "2140", Name: "Short Term Loans", RootType: RootTypeLiability, ParentCode: "2100"},
		{Code: "2200", Name: "Long Term Liabilities", RootType: RootTypeLiability, IsGroup: true, ParentCode: "2000"},
		{Code: "2210", Name: "Secured Loans", RootType: RootTypeLiability, ParentCode: "2200"},
		{Code: "2220", Name: "Unsecured Loans", RootType: RootTypeLiability, ParentCode: "2200"},
		{Code: "3000", Name: "Equity", RootType: RootTypeEquity, IsGroup: true},
		{Code: "3100", Name: "Capital Stock", RootType: RootTypeEquity, ParentCode: "3000"},
		{Code: "3200", Name: "Retained Earnings", RootType: RootTypeEquity, ParentCode: "3000"},
		{Code: "3300", Name: "Dividends Paid", RootType: RootTypeEquity, ParentCode: "3000"},
		{Code: "3400", Name: "Opening Balance Equity", RootType: RootTypeEquity, ParentCode: "3000"},
		{Code: "4000", Name: "Income", RootType: RootTypeIncome, IsGroup: true},
		{Code: "4100", Name: "Direct Income", RootType: RootTypeIncome, IsGroup: true, ParentCode: "4000"},
		{Code: "4110", Name: "Sales", RootType: RootTypeIncome, ParentCode: "4100"},
		{Code: "4120", Name: "Service Revenue", RootType: RootTypeIncome, ParentCode: "4100"},
		{Code: "4200", Name: "Indirect Income", RootType: RootTypeIncome, IsGroup: true, ParentCode: "4000"},
		{Code: "4210", Name: "Commission Income", RootType: RootTypeIncome, ParentCode: "4200"},
		{Code: "4220", Name: "Interest Income", RootType: RootTypeIncome, ParentCode: "4200"},
		{Code: "4230", Name: "Foreign Exchange Gain", RootType: RootTypeIncome, ParentCode: "4200"},
		{Code: "5000", Name: "Expenses", RootType: RootTypeExpense, IsGroup: true},
		{Code: "5100", Name: "Cost of Goods Sold", RootType: RootTypeExpense, IsGroup: true, ParentCode: "5000"},
		{Code: "5110", Name: "Cost of Goods Sold Account", RootType: RootTypeExpense, ParentCode: "5100"},
		{Code: "5120", Name: "Freight Inward", RootType: RootTypeExpense, ParentCode: "5100"},
		{Code: "5200", Name: "Indirect Expenses", RootType: RootTypeExpense, IsGroup: true, ParentCode: "5000"},
		{Code: "5210", Name: "Salaries and Wages", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5220", Name: "Rent", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5230", Name: "Utilities", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5240", Name: "Advertising and Marketing", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5250", Name: "Office Supplies", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5260", Name: "Travel", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5270", Name: "Depreciation", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5280", Name: "Insurance", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5290", Name: "Legal and Professional Fees", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5310", Name: "Software Subscriptions", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5320", Name: "Telephone", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5330", Name: "Repairs and Maintenance", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5340", Name: "Bank Charges", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5350", Name: "Foreign Exchange Loss", RootType: RootTypeExpense, ParentCode: "5200"},
		{Code: "5360", Name: "Miscellaneous Expenses", RootType: RootTypeExpense, ParentCode: "5200"},
	}
}
