package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/config"
	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	file    string
	subject string
}

// 邮件类型 -> 模板文件和标题
var mailTemplates = map[string]mailTemplate{
	domain.MailTypeRecommendationAlert: {
		file:    "recommendation_alert.html",
		subject: "排班助手 - 新的高优先级建议",
	},
	domain.MailTypeStaffingShortage: {
		file:    "staffing_shortage.html",
		subject: "排班助手 - 人手不足提醒",
	},
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 解析邮件模板
	 **********************************************/
	templates := make(map[string]*template.Template, len(mailTemplates))
	for mailType, mt := range mailTemplates {
		tmpl, err := template.ParseFiles(filepath.Join(cfg.Email.TemplateDir, mt.file))
		if err != nil {
			logger.Error("无法解析邮件模板", slog.String("type", mailType), slog.String("error", err.Error()))
			return
		}
		templates[mailType] = tmpl
	}

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name, // 队列
		"",     // 消费者标识，由 RabbitMQ 自动分配
		false,  // 手动确认
		false,  // 非独占
		false,  // RabbitMQ 不支持 noLocal
		false,  // 等待 RabbitMQ 响应
		nil,
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Error("消息通道已关闭")
					return
				}
				handleDelivery(logger, client, cfg, templates, msg)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	logger.Info("正在关闭 mail worker...")
	cancel()
	wg.Wait()
	logger.Info("mail worker 已成功关闭")
}

func handleDelivery(logger *slog.Logger, client *mail.Client, cfg *config.Config, templates map[string]*template.Template, msg amqp.Delivery) {
	logger.Info("收到消息", slog.String("message", string(msg.Body)))

	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
		logger.Error("邮件信息反序列化失败", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	tmpl, ok := templates[mailMessage.Type]
	if !ok {
		logger.Error("不支持的邮件类型", slog.String("type", mailMessage.Type))
		_ = msg.Nack(false, false)
		return
	}

	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		logger.Error("无法设置邮件发件人", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.To(mailMessage.To); err != nil {
		logger.Error("无法设置邮件收件人", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		logger.Error("无法设置邮件正文", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	m.Subject(mailTemplates[mailMessage.Type].subject)

	if err := client.DialAndSend(m); err != nil {
		logger.Error("邮件发送失败", slog.String("error", err.Error()))
		_ = msg.Nack(false, true) // 重新入队
		return
	}

	_ = msg.Ack(false)
}
