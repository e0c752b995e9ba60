package dependencies

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
)

// EmailClientInterface 定义了认证流程依赖的邮件发送能力。
// 通过接口注入，便于测试时替换为空实现。
type EmailClientInterface interface {
	// SendVerificationCode 发送邮箱验证码
	SendVerificationCode(ctx context.Context, to string, code string) error
	// SendPasswordReset 发送密码重置链接（携带一次性令牌）
	SendPasswordReset(ctx context.Context, to string, resetURL string) error
}

type emailClient struct {
	client *resend.Client
	from   string
	logger *core.ZapLogger
}

// InitEmailClient 初始化 Resend 邮件客户端
func InitEmailClient(cfg *config.EmailConfig, logger *core.ZapLogger) (EmailClientInterface, error) {
	if cfg == nil || cfg.APIKey == "" || cfg.From == "" {
		return nil, fmt.Errorf("邮件配置不完整，缺少 api_key 或 from")
	}
	return &emailClient{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
		logger: logger,
	}, nil
}

func (e *emailClient) send(to, subject, html, text string) error {
	_, err := e.client.Emails.Send(&resend.SendEmailRequest{
		From:    e.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	return err
}

// SendVerificationCode 发送邮箱验证码邮件
func (e *emailClient) SendVerificationCode(ctx context.Context, to string, code string) error {
	subject := "邮箱验证码"
	html := fmt.Sprintf("<p>你的验证码是 <strong>%s</strong>，10 分钟内有效。</p>", code)
	text := fmt.Sprintf("你的验证码是 %s，10 分钟内有效。", code)

	if err := e.send(to, subject, html, text); err != nil {
		e.logger.Error("发送验证码邮件失败", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("发送验证码邮件失败: %w", err)
	}
	e.logger.Info("验证码邮件已发送", zap.String("to", to))
	return nil
}

// SendPasswordReset 发送密码重置邮件
func (e *emailClient) SendPasswordReset(ctx context.Context, to string, resetURL string) error {
	subject := "重置密码"
	html := fmt.Sprintf("<p>点击链接重置密码（10 分钟内有效）: <a href=\"%s\">%s</a></p>", resetURL, resetURL)
	text := fmt.Sprintf("打开链接重置密码（10 分钟内有效）: %s", resetURL)

	if err := e.send(to, subject, html, text); err != nil {
		e.logger.Error("发送密码重置邮件失败", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("发送密码重置邮件失败: %w", err)
	}
	e.logger.Info("密码重置邮件已发送", zap.String("to", to))
	return nil
}
