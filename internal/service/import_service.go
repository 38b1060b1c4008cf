package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"conn-hub/internal/dto"
	"conn-hub/internal/pkg/logger"
	pkgErrors "conn-hub/pkg/responses"
)

// ImportOwner 导入时审计日志中记录的操作人
const ImportOwner = "import"

// ConnectionFile 导入文件格式
//
//	connections:
//	  - connection_id: mysql_default
//	    conn_type: mysql
//	    host: 127.0.0.1
type ConnectionFile struct {
	Connections []*dto.ConnectionPayload `yaml:"connections"`
}

// ImportResult 导入结果
type ImportResult struct {
	Created []string
	Skipped []string // 已存在
}

type ImportService struct {
	connections ConnectionService
}

func NewImportService(connections ConnectionService) *ImportService {
	return &ImportService{connections: connections}
}

// Import 逐条创建，已存在的跳过，其余错误立即返回
func (s *ImportService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var file ConnectionFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("解析导入文件失败: %w", err)
	}

	result := &ImportResult{}
	for i, payload := range file.Connections {
		if payload == nil {
			continue
		}
		resp, err := s.connections.Create(ctx, ImportOwner, payload)
		if err != nil {
			var appErr *pkgErrors.AppError
			if errors.As(err, &appErr) && appErr.Status == http.StatusConflict {
				result.Skipped = append(result.Skipped, *payload.ConnectionID)
				logger.Info("连接已存在，跳过", zap.String("conn_id", *payload.ConnectionID))
				continue
			}
			return result, fmt.Errorf("导入第 %d 条连接失败: %w", i+1, err)
		}
		result.Created = append(result.Created, resp.ConnectionID)
	}
	return result, nil
}
