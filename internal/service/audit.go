package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/meridianbank/bankadmin-api/internal/core"
	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/domain/model"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// AuditServiceOptions groups dependencies for AuditService.
type AuditServiceOptions struct {
	AuditRepo core.AuditRepository
	JMESPath  JMESPathEvaluator // optional, defaults to go-jmespath
	Logger    *slog.Logger
}

// AuditService exposes the back-office audit trail: append on behalf of
// other services, and browse with SQL filters plus an optional JMESPath
// query over each entry's detail document.
type AuditService struct {
	repo   core.AuditRepository
	jems   JMESPathEvaluator
	logger *slog.Logger
}

// NewAuditService constructs a new AuditService.
func NewAuditService(opts AuditServiceOptions) *AuditService {
	jems := opts.JMESPath
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditService{repo: opts.AuditRepo, jems: jems, logger: logger}
}

// Append writes one audit entry.
func (s *AuditService) Append(ctx context.Context, req *model.AppendAuditRequest) (*model.AuditEntry, error) {
	return s.repo.Append(ctx, req)
}

// List browses the audit trail. SQL-expressible filters are pushed to the
// repository; when DetailQuery is set, it is validated, compiled once, and
// evaluated against each entry's detail document, dropping entries whose
// result is falsy by JMESPath rules.
func (s *AuditService) List(ctx context.Context, opts model.AuditListOptions) ([]*model.AuditEntry, error) {
	query := strings.TrimSpace(opts.DetailQuery)
	if query != "" {
		if err := s.jems.Validate(query); err != nil {
			return nil, fmt.Errorf("invalid detail query: %w", err)
		}
	}

	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return entries, nil
	}

	filtered := make([]*model.AuditEntry, 0, len(entries))
	for _, entry := range entries {
		match, evalErr := s.detailMatches(query, entry.Detail)
		if evalErr != nil {
			return nil, fmt.Errorf("evaluate detail query: %w", evalErr)
		}
		if match {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (s *AuditService) detailMatches(query string, detail json.RawMessage) (bool, error) {
	var doc any
	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &doc); err != nil {
			return false, fmt.Errorf("decode detail document: %w", err)
		}
	}
	result, err := s.jems.Evaluate(query, doc)
	if err != nil {
		return false, err
	}
	return isTruthy(result), nil
}

// isTruthy applies JMESPath truthiness: null, false, empty string, empty
// array, and empty object are all falsy.
func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// auditTrail records staff actions on behalf of the mutating services.
// Recording is best effort: the underlying mutation has already committed,
// so a failed append is logged and surfaced as a metric-worthy warning
// rather than failing the request.
type auditTrail struct {
	repo   core.AuditRepository
	logger *slog.Logger
}

func newAuditTrail(repo core.AuditRepository, logger *slog.Logger) auditTrail {
	if logger == nil {
		logger = slog.Default()
	}
	return auditTrail{repo: repo, logger: logger}
}

func (a auditTrail) record(ctx context.Context, actor domainauth.AuthContext, action model.AuditAction, targetType, targetID string, detail any) {
	if a.repo == nil {
		return
	}
	_, err := a.repo.Append(ctx, &model.AppendAuditRequest{
		AdminID:    actor.AdminID,
		AdminEmail: actor.Email,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	})
	if err != nil {
		a.logger.Warn("audit append failed",
			"action", action,
			"target_type", targetType,
			"target_id", targetID,
			"error", err)
	}
}
