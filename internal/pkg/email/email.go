package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fitforge/gym_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
	gym *config.GymConfig
}

func NewService(cfg *config.EmailConfig, gym *config.GymConfig) *Service {
	return &Service{cfg: cfg, gym: gym}
}

// SendWelcome 发送入会欢迎邮件
func (s *Service) SendWelcome(to, name string) error {
	subject := fmt.Sprintf("欢迎加入 %s - %s", s.gym.Name, name)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">欢迎加入！</h2>
        <p>%s，您好！</p>
        <p>感谢您成为 %s 的会员，您的会籍已经生效。</p>
        <p>现在您可以：</p>
        <ul>
            <li>在营业时间内随时到店锻炼</li>
            <li>参加会员团课和活动</li>
            <li>预约教练进行体测和训练指导</li>
        </ul>
        <p>期待在场馆见到您！</p>
        %s
    </div>
</body>
</html>
`, name, s.gym.Name, s.footer())

	return s.sendHTML(to, subject, body)
}

// SendPaymentReminder 发送欠费提醒邮件
func (s *Service) SendPaymentReminder(to, name string, pendingAmount float64) error {
	subject := fmt.Sprintf("缴费提醒 - %s", name)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">缴费提醒</h2>
        <p>%s，您好！</p>
        <p>您在 %s 还有未结清的会籍费用：</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; margin: 20px 0;">
            ₹%.2f
        </div>
        <p>请您在方便时到前台完成缴费，支持现金、刷卡、UPI 和支票。</p>
        <p>如已缴清，请忽略此邮件。</p>
        %s
    </div>
</body>
</html>
`, name, s.gym.Name, pendingAmount, s.footer())

	return s.sendHTML(to, subject, body)
}

// SendExpiryReminder 发送会籍到期提醒邮件
func (s *Service) SendExpiryReminder(to, name, expiryDate string, daysLeft int) error {
	subject := fmt.Sprintf("会籍到期提醒 - %s", name)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">会籍到期提醒</h2>
        <p>%s，您好！</p>
        <p>您在 %s 的会籍将于 <strong>%s</strong> 到期（还剩 %d 天）。</p>
        <p>为避免锻炼中断，请尽快到前台办理续费。</p>
        %s
    </div>
</body>
</html>
`, name, s.gym.Name, expiryDate, daysLeft, s.footer())

	return s.sendHTML(to, subject, body)
}

// footer 门店联系方式落款
func (s *Service) footer() string {
	return fmt.Sprintf(`
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">%s · %s<br>电话：%s · 邮箱：%s</p>
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>`,
		s.gym.Name, s.gym.Address, s.gym.Phone, s.gym.Email)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
