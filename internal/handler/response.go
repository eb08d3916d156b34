package handler

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"echo_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// 对外错误契约：HTTP 状态码表达错误类别，响应体固定为 {"message": "..."}
// 成功响应直接返回数据 JSON，创建类接口返回 201

// HandleSuccess 返回 200 和数据
func HandleSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// HandleCreated 返回 201 和数据（注册、建房等创建类接口）
func HandleCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// HandleError 通用错误处理
// errorx.CodeError 映射到对应的 HTTP 状态码；
// 5xx 错误记录完整日志但对外只返回通用提示，不泄露内部细节
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		status := errorx.HTTPStatus(codeErr.Code)
		if status < http.StatusInternalServerError {
			c.JSON(status, gin.H{"message": codeErr.Msg})
			return
		}
	}

	zap.L().Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"message": errorx.ErrServerBusy.Msg})
}

// HandleParamError 处理参数绑定错误（带 validator 翻译支持）
// 多个字段错误按字段名排序后拼成一条 message
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		translated := RemoveTopStruct(validationErrs.Translate(Trans))
		fields := make([]string, 0, len(translated))
		for field := range translated {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, translated[field])
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(parts, "; ")})
		return
	}

	// 非 validator 错误（如 JSON 语法错误）
	zap.L().Warn("param bind error", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"message": errorx.ErrInvalidParam.Msg})
}
