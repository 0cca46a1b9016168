package oss

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Storage 媒体文件存储, 对外只暴露可公开访问的url
type Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewStorage(client *minio.Client, bucket, publicBase string) *Storage {
	return &Storage{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Upload 上传本地文件到 prefix 目录下, 返回公开url
func (s *Storage) Upload(ctx context.Context, localPath, prefix string) (string, error) {
	objectName := NewObjectName(prefix, localPath)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		hlog.CtxErrorf(ctx, "upload %s to %s failed: %v", localPath, objectName, err)
		return "", errors.Wrapf(err, "upload %s", objectName)
	}
	return s.URL(objectName), nil
}

// Delete 按url删除对象, 不属于本存储桶的url直接忽略
func (s *Storage) Delete(ctx context.Context, url string) error {
	objectName, ok := s.ObjectName(url)
	if !ok {
		hlog.CtxWarnf(ctx, "skip deleting foreign media reference %s", url)
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove %s", objectName)
	}
	return nil
}

// URL 对象的公开访问地址
func (s *Storage) URL(objectName string) string {
	return s.publicBase + "/" + s.bucket + "/" + objectName
}

// ObjectName 从公开url中解析出对象名
func (s *Storage) ObjectName(url string) (string, bool) {
	prefix := s.publicBase + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// NewObjectName 生成 prefix/<uuid><ext> 形式的对象名
func NewObjectName(prefix, localPath string) string {
	return prefix + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(localPath))
}
