package handlers

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/pkg/utils"
)

// saveUpload 把表单文件落到本地临时目录, 返回的清理函数删除该文件
// 表单中没有该字段时返回空路径
func (h *Handler) saveUpload(ctx context.Context, c *app.RequestContext, field string) (string, func(), error) {
	file, err := c.FormFile(field)
	if err != nil || file == nil {
		return "", func() {}, nil
	}
	return h.saveFile(ctx, c, file)
}

func (h *Handler) saveFile(ctx context.Context, c *app.RequestContext, file *multipart.FileHeader) (string, func(), error) {
	dst := filepath.Join(h.uploadDir, utils.NewID()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", func() {}, err
	}
	return dst, func() {
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s failed: %v", dst, err)
		}
	}, nil
}
