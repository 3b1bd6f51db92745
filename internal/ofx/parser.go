// Package ofx derives profile figures from OFX/QFX bank and credit card statements.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Flow is one posted transaction. Amount is signed: positive is money in.
type Flow struct {
	Date    time.Time
	ID      string
	Account string
	Name    string
	Type    string
	Amount  float64
	Card    bool
}

// Statement is everything read from one OFX file.
type Statement struct {
	Flows      []Flow
	Accounts   []string
	Balance    float64
	HasBalance bool
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile reads one OFX/QFX document.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &Statement{}
	accounts := make(map[string]bool)
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		bank, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		bankStmts++
		accountID := string(bank.BankAcctFrom.AcctID)
		accounts[accountID] = true

		if !bank.DtAsOf.IsZero() {
			balance, _ := bank.BalAmt.Float64()
			stmt.Balance += balance
			stmt.HasBalance = true
		}
		if bank.BankTranList != nil {
			for _, tx := range bank.BankTranList.Transactions {
				stmt.Flows = append(stmt.Flows, p.convertTransaction(tx, accountID, false))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		card, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		ccStmts++
		accountID := string(card.CCAcctFrom.AcctID)
		accounts[accountID] = true

		if card.BankTranList != nil {
			for _, tx := range card.BankTranList.Transactions {
				stmt.Flows = append(stmt.Flows, p.convertTransaction(tx, accountID, true))
			}
		}
	}

	for acct := range accounts {
		if acct != "" {
			stmt.Accounts = append(stmt.Accounts, acct)
		}
	}
	sort.Strings(stmt.Accounts)

	p.logger.Info("Parsed OFX file",
		"total_transactions", len(stmt.Flows),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

func (p *Parser) convertTransaction(tx ofxgo.Transaction, accountID string, card bool) Flow {
	amount, _ := tx.TrnAmt.Float64()
	return Flow{
		ID:      string(tx.FiTID),
		Date:    tx.DtPosted.Time,
		Account: accountID,
		Name:    p.extractMerchantName(tx),
		Type:    tx.TrnType.String(),
		Amount:  amount,
		Card:    card,
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
