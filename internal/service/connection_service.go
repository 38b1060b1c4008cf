package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"conn-hub/internal/adapter/probe"
	"conn-hub/internal/core/connection"
	"conn-hub/internal/core/paginate"
	"conn-hub/internal/core/redact"
	"conn-hub/internal/dto"
	"conn-hub/internal/model"
	"conn-hub/internal/pkg/logger"
	"conn-hub/internal/repository"
	"conn-hub/pkg/constants"
	pkgErrors "conn-hub/pkg/responses"
)

const (
	connectionNotFoundTitle = "Connection not found"
	maxConnIDLength         = 250
)

// connIDPattern 字母、数字、横线、点、下划线
var connIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

type ConnectionService interface {
	Get(ctx context.Context, connID string) (*dto.ConnectionResponse, error)
	List(ctx context.Context, query *dto.ListConnectionsQuery) (*dto.ConnectionCollectionResponse, error)
	Create(ctx context.Context, owner string, req *dto.ConnectionPayload) (*dto.ConnectionResponse, error)
	// Update mask 为空时整体替换
	Update(ctx context.Context, owner, connID string, req *dto.ConnectionPayload, mask []string) (*dto.ConnectionResponse, error)
	Delete(ctx context.Context, owner, connID string) error
	// Test 探测请求体描述的连接，不落库
	Test(ctx context.Context, req *dto.ConnectionPayload) (*dto.ConnectionTestResponse, error)
}

type connectionService struct {
	repo   repository.ConnectionRepository
	audit  AuditService
	prober probe.Prober
	pager  *paginate.Engine[*model.Connection]
}

func NewConnectionService(
	repo repository.ConnectionRepository,
	audit AuditService,
	prober probe.Prober,
	maxPageLimit int,
) ConnectionService {
	return &connectionService{
		repo:   repo,
		audit:  audit,
		prober: prober,
		pager:  connection.NewPaginator(maxPageLimit),
	}
}

func (s *connectionService) Get(ctx context.Context, connID string) (*dto.ConnectionResponse, error) {
	conn, err := s.find(ctx, connID)
	if err != nil {
		return nil, err
	}
	return toConnectionResponse(conn), nil
}

func (s *connectionService) List(ctx context.Context, query *dto.ListConnectionsQuery) (*dto.ConnectionCollectionResponse, error) {
	page, err := s.pager.Resolve(query.OrderBy, query.Limit, query.Offset)
	if err != nil {
		return nil, pkgErrors.BadRequest(err.Error())
	}

	conns, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ConnectionResponse, 0, len(conns))
	for _, conn := range conns {
		items = append(items, toConnectionResponse(conn))
	}
	return &dto.ConnectionCollectionResponse{
		Connections:  items,
		TotalEntries: total,
	}, nil
}

func (s *connectionService) Create(ctx context.Context, owner string, req *dto.ConnectionPayload) (*dto.ConnectionResponse, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}
	if err := validateConnID(*req.ConnectionID); err != nil {
		return nil, err
	}

	conn := req.ToModel()
	if err := s.repo.Create(ctx, conn); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordExists) {
			return nil, pkgErrors.Conflict(fmt.Sprintf("Connection already exist. ID: %s", conn.ConnID))
		}
		return nil, err
	}

	logger.Info("创建连接",
		zap.String("conn_id", conn.ConnID),
		zap.String("conn_type", conn.ConnType),
		zap.String("owner", owner),
	)
	s.audit.Record(ctx, constants.AuditEventConnectionCreate, conn.ConnID, owner, map[string]interface{}{
		"conn_type": conn.ConnType,
	})
	return toConnectionResponse(conn), nil
}

func (s *connectionService) Update(ctx context.Context, owner, connID string, req *dto.ConnectionPayload, mask []string) (*dto.ConnectionResponse, error) {
	existing, err := s.find(ctx, connID)
	if err != nil {
		return nil, err
	}

	merged, err := connection.Resolve(existing, req.ToModel(), mask)
	if err != nil {
		return nil, pkgErrors.BadRequest(err.Error())
	}
	if err := s.repo.Update(ctx, merged); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, connectionNotFound(connID)
		}
		return nil, err
	}

	fields := mask
	if len(fields) == 0 {
		fields = connection.MutableFields()
	}
	logger.Info("更新连接",
		zap.String("conn_id", connID),
		zap.Strings("fields", fields),
		zap.String("owner", owner),
	)
	s.audit.Record(ctx, constants.AuditEventConnectionEdit, connID, owner, map[string]interface{}{
		"update_mask": fields,
	})
	return toConnectionResponse(merged), nil
}

func (s *connectionService) Delete(ctx context.Context, owner, connID string) error {
	if err := s.repo.Delete(ctx, connID); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return connectionNotFound(connID)
		}
		return err
	}

	logger.Info("删除连接", zap.String("conn_id", connID), zap.String("owner", owner))
	s.audit.Record(ctx, constants.AuditEventConnectionDelete, connID, owner, nil)
	return nil
}

func (s *connectionService) Test(ctx context.Context, req *dto.ConnectionPayload) (*dto.ConnectionTestResponse, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}

	status, message := s.prober.Test(ctx, req.ToModel())
	return &dto.ConnectionTestResponse{Status: status, Message: message}, nil
}

func (s *connectionService) find(ctx context.Context, connID string) (*model.Connection, error) {
	conn, err := s.repo.GetByConnID(ctx, connID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, connectionNotFound(connID)
		}
		return nil, err
	}
	return conn, nil
}

func connectionNotFound(connID string) error {
	return pkgErrors.NotFound(connectionNotFoundTitle,
		fmt.Sprintf("The Connection with connection_id: `%s` was not found", connID))
}

func validateConnID(connID string) error {
	if len(connID) > maxConnIDLength {
		return pkgErrors.BadRequest(
			fmt.Sprintf("The key '%s' has to be less than %d characters", connID, maxConnIDLength))
	}
	if !connIDPattern.MatchString(connID) {
		return pkgErrors.BadRequest(fmt.Sprintf(
			"The key '%s' has to be made of alphanumeric characters, dashes, dots and underscores exclusively", connID))
	}
	return nil
}

// toConnectionResponse 不输出 password，extra 脱敏
func toConnectionResponse(conn *model.Connection) *dto.ConnectionResponse {
	out := conn.Clone()
	return &dto.ConnectionResponse{
		ConnectionID: out.ConnID,
		ConnType:     out.ConnType,
		Description:  out.Description,
		Host:         out.Host,
		Login:        out.Login,
		Schema:       out.Schema,
		Port:         out.Port,
		Extra:        redact.Extra(out.Extra),
	}
}
