package compliance

import (
	"time" // Message timestamps

	"quantum_financial_system/internal/domain" // Transaction model
)

// ISO 20022 message definitions a transaction maps to
const (
	MessageTypeCreditTransfer = "pacs.008.001.08" // FI to FI customer credit transfer
	MessageTypeStatusReport   = "pacs.002.001.10" // Payment status report, used once settled
)

// DefaultCurrency is the settlement currency of every instructed amount
const DefaultCurrency = "USD"

// InstructedAmount is the amount block of a message
type InstructedAmount struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"` // Decimal string, never rounded
}

// Message is the ISO 20022 view of a ledger transaction
type Message struct {
	MessageType           string           `json:"messageType"`
	MessageID             string           `json:"messageId"`        // MSG + creation time
	EndToEndID            string           `json:"endToEndId"`       // Ledger transaction id
	CreationDateTime      string           `json:"creationDateTime"` // RFC3339 UTC
	InstructingAgent      string           `json:"instructingAgent"` // Originating network
	InstructedAgent       string           `json:"instructedAgent"`  // Recipient address
	InstructedAmount      InstructedAmount `json:"instructedAmount"`
	TransactionStatus     string           `json:"transactionStatus"` // ISO external status code
	RemittanceInformation string           `json:"remittanceInformation"`
}

// statusCodes maps lifecycle states onto ExternalPaymentTransactionStatus codes
var statusCodes = map[domain.Status]string{
	domain.StatusPending:    "PDNG",
	domain.StatusProcessing: "ACSP",
	domain.StatusCompleted:  "ACSC",
	domain.StatusFailed:     "RJCT",
}

// ToISO20022 maps a transaction to the message the dashboard would exchange for it
func ToISO20022(tx domain.Transaction, now time.Time) Message {
	now = now.UTC()
	msgType, purpose := MessageTypeCreditTransfer, "payment"
	if tx.Status.IsTerminal() {
		msgType, purpose = MessageTypeStatusReport, "settlement"
	}
	return Message{
		MessageType:      msgType,
		MessageID:        "MSG" + now.Format("20060102150405"),
		EndToEndID:       tx.ID,
		CreationDateTime: now.Format(time.RFC3339),
		InstructingAgent: string(tx.Network),
		InstructedAgent:  tx.Recipient,
		InstructedAmount: InstructedAmount{
			Currency: DefaultCurrency,
			Amount:   tx.Amount.String(),
		},
		TransactionStatus:     statusCodes[tx.Status],
		RemittanceInformation: purpose,
	}
}
