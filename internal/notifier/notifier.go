package notifier

import (
	"fmt"
	"net/smtp"

	"auction-settlement/utils"

	"github.com/shopspring/decimal"
)

// AuctionEndedNoBids is sent to the seller when an auction closes without bids.
type AuctionEndedNoBids struct {
	SellerEmail  string
	SellerName   string
	ProductTitle string
}

// AuctionWon is sent to the winning bidder: what they owe and who to contact.
type AuctionWon struct {
	WinnerEmail    string
	WinnerName     string
	ProductTitle   string
	FinalBidAmount decimal.Decimal
	DeliveryFee    decimal.Decimal
	TotalAmount    decimal.Decimal
	SellerPhone    string
}

// AuctionSold is sent to the seller: proceeds, commission and winner contact.
type AuctionSold struct {
	SellerEmail        string
	SellerName         string
	ProductTitle       string
	FinalBidAmount     decimal.Decimal
	PlatformCommission decimal.Decimal
	SellerPayout       decimal.Decimal
	WinnerName         string
	WinnerPhone        string
}

// Notifier delivers settlement outcome messages. Implementations are
// best-effort transports: the settlement engine never rolls back on a
// delivery failure.
type Notifier interface {
	NotifyAuctionEndedNoBids(notice AuctionEndedNoBids) error
	NotifyAuctionWon(notice AuctionWon) error
	NotifyAuctionSold(notice AuctionSold) error
}

// EmailConfig holds SMTP server settings for the email notifier
type EmailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPNotifier delivers settlement notices over plain SMTP.
type SMTPNotifier struct {
	cfg EmailConfig
}

// NewSMTPNotifier creates an email-backed Notifier
func NewSMTPNotifier(cfg EmailConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) NotifyAuctionEndedNoBids(notice AuctionEndedNoBids) error {
	subject := fmt.Sprintf("Your auction %q ended without bids", notice.ProductTitle)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour auction %q has ended without receiving any bids.\r\nYou can relist the item at any time.\r\n",
		notice.SellerName, notice.ProductTitle)
	return n.sendEmail(notice.SellerEmail, subject, body)
}

func (n *SMTPNotifier) NotifyAuctionWon(notice AuctionWon) error {
	subject := fmt.Sprintf("You won the auction for %q", notice.ProductTitle)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nCongratulations, you won %q.\r\n\r\nWinning bid: %s\r\nDelivery fee: %s\r\nTotal due: %s\r\n\r\nSeller phone: %s\r\n",
		notice.WinnerName, notice.ProductTitle,
		notice.FinalBidAmount.StringFixed(2),
		notice.DeliveryFee.StringFixed(2),
		notice.TotalAmount.StringFixed(2),
		notice.SellerPhone)
	return n.sendEmail(notice.WinnerEmail, subject, body)
}

func (n *SMTPNotifier) NotifyAuctionSold(notice AuctionSold) error {
	subject := fmt.Sprintf("Your auction %q has sold", notice.ProductTitle)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour auction %q has sold.\r\n\r\nFinal bid: %s\r\nPlatform commission: %s\r\nYour payout: %s\r\n\r\nWinner: %s (%s)\r\n",
		notice.SellerName, notice.ProductTitle,
		notice.FinalBidAmount.StringFixed(2),
		notice.PlatformCommission.StringFixed(2),
		notice.SellerPayout.StringFixed(2),
		notice.WinnerName, notice.WinnerPhone)
	return n.sendEmail(notice.SellerEmail, subject, body)
}

func (n *SMTPNotifier) sendEmail(to, subject, textBody string) error {
	if to == "" {
		return fmt.Errorf("send email %q: recipient address is empty", subject)
	}

	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	msg := fmt.Sprintf("From: %s <%s>\r\n", n.cfg.FromName, n.cfg.FromAddress)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=UTF-8\r\n\r\n"
	msg += textBody

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	return smtp.SendMail(addr, auth, n.cfg.FromAddress, []string{to}, []byte(msg))
}

// LogNotifier logs notices instead of sending them. Used when SMTP is not
// configured, so local runs and tests never touch a mail server.
type LogNotifier struct{}

// NewLogNotifier creates a log-only Notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyAuctionEndedNoBids(notice AuctionEndedNoBids) error {
	utils.Info("auction ended with no bids", map[string]any{
		"seller_email": notice.SellerEmail,
		"title":        notice.ProductTitle,
	})
	return nil
}

func (n *LogNotifier) NotifyAuctionWon(notice AuctionWon) error {
	utils.Info("auction won", map[string]any{
		"winner_email": notice.WinnerEmail,
		"title":        notice.ProductTitle,
		"final_bid":    notice.FinalBidAmount.StringFixed(2),
		"delivery_fee": notice.DeliveryFee.StringFixed(2),
		"total_due":    notice.TotalAmount.StringFixed(2),
	})
	return nil
}

func (n *LogNotifier) NotifyAuctionSold(notice AuctionSold) error {
	utils.Info("auction sold", map[string]any{
		"seller_email": notice.SellerEmail,
		"title":        notice.ProductTitle,
		"final_bid":    notice.FinalBidAmount.StringFixed(2),
		"commission":   notice.PlatformCommission.StringFixed(2),
		"payout":       notice.SellerPayout.StringFixed(2),
	})
	return nil
}
