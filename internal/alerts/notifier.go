package alerts

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

type SMTPConfig struct {
	From         string
	To           string
	Server       string
	Port         string
	User         string
	Password     string
	AuthDisabled bool
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Notifier records low-stock events and sends the digest.
type Notifier struct {
	events EventLog
	smtp   SMTPConfig
	send   sendFunc
	now    func() time.Time
}

func NewNotifier(events EventLog, cfg SMTPConfig) *Notifier {
	return &Notifier{
		events: events,
		smtp:   cfg,
		send:   smtp.SendMail,
		now:    time.Now,
	}
}

// RecordLowStock logs an event when the product sits at or below its threshold.
func (n *Notifier) RecordLowStock(p models.Product) error {
	if !p.LowStock() {
		return nil
	}

	e := Event{
		UserID:      p.UserID,
		ProductID:   p.ID,
		ProductName: p.Name,
		SKU:         p.SKU,
		Quantity:    p.Quantity,
		Threshold:   p.Threshold,
		Time:        n.now(),
	}
	log.Printf("⚠️ LOW STOCK user=%d product=%s quantity=%d threshold=%d", e.UserID, e.ProductID, e.Quantity, e.Threshold)
	return n.events.Push(e)
}

// SendDailyDigest drains the event log and mails the summary. Without an SMTP
// server the summary is only logged.
func (n *Notifier) SendDailyDigest() error {
	events, err := n.events.Drain()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	body := BuildDigest(events)
	if n.smtp.Server == "" {
		log.Printf("📦 Daily low stock summary: %d alerts (smtp not configured)", len(events))
		return nil
	}

	msg := strings.Join([]string{
		"From: " + n.smtp.From,
		"To: " + n.smtp.To,
		"Subject: 📦 Daily Low Stock Report",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", n.smtp.Server, n.smtp.Port)
	var auth smtp.Auth
	if !n.smtp.AuthDisabled {
		auth = smtp.PlainAuth("", n.smtp.User, n.smtp.Password, n.smtp.Server)
	}

	if err := n.send(addr, auth, n.smtp.From, []string{n.smtp.To}, []byte(msg)); err != nil {
		if rerr := n.events.Restore(events); rerr != nil {
			log.Printf("❌ Failed to restore %d low stock alerts: %v", len(events), rerr)
		}
		return fmt.Errorf("failed to send digest: %w", err)
	}
	log.Println("📬 Daily low stock summary sent via SMTP.")
	return nil
}

// StartDailyDigest sends the digest at 23:59 local time every interval until
// ctx is done.
func (n *Notifier) StartDailyDigest(ctx context.Context, interval time.Duration) {
	for {
		now := n.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := n.SendDailyDigest(); err != nil {
			log.Printf("❌ %v", err)
		}
	}
}
