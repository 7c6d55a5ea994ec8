package mailer

import (
	"bytes"
	"html/template"
	"time"
)

type BookingEmailData struct {
	FullName      string
	EquipmentName string
	BookingDate   time.Time
	Duration      int
	District      string
	Sector        string
	Cell          string
	TotalAmount   int64
}

type PaymentEmailData struct {
	BookingID     string
	TransactionID string
	Amount        float64
	Currency      string
	CustomerName  string
	EquipmentName string
	Location      string
	BookingDate   time.Time
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02 Jan 2006") },
}

var bookingConfirmationTmpl = template.Must(template.New("confirmation").Funcs(templateFuncs).Parse(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #166534; color: white; padding: 20px; text-align: center;">
      <h1>Booking Confirmation</h1>
    </div>
    <p>Dear {{.FullName}},</p>
    <p>Great news! Your equipment booking has been confirmed. Here are your booking details:</p>
    <ul>
      <li><strong>Equipment:</strong> {{.EquipmentName}}</li>
      <li><strong>Booking Date:</strong> {{date .BookingDate}}</li>
      <li><strong>Duration:</strong> {{.Duration}} day(s)</li>
      <li><strong>Location:</strong> {{.District}}, {{.Sector}}, {{.Cell}}</li>
      <li><strong>Total Amount:</strong> {{.TotalAmount}} RWF</li>
    </ul>
    <p>Our team will deliver the equipment to your location on the booking date. Please keep your phone reachable.</p>
    <p style="color: #666; font-size: 14px;">Thrive Africa Tractor</p>
  </div>
</body>
</html>`))

var bookingCancellationTmpl = template.Must(template.New("cancellation").Funcs(templateFuncs).Parse(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #991b1b; color: white; padding: 20px; text-align: center;">
      <h1>Booking Cancelled</h1>
    </div>
    <p>Dear {{.FullName}},</p>
    <p>Your booking for the equipment below has been cancelled:</p>
    <ul>
      <li><strong>Equipment:</strong> {{.EquipmentName}}</li>
      <li><strong>Booking Date:</strong> {{date .BookingDate}}</li>
      <li><strong>Duration:</strong> {{.Duration}} day(s)</li>
    </ul>
    <p>If you already made a payment for this booking, our team will contact you about a refund. For any questions, reply to this email.</p>
    <p style="color: #666; font-size: 14px;">Thrive Africa Tractor</p>
  </div>
</body>
</html>`))

var paymentReceivedTmpl = template.Must(template.New("payment").Funcs(templateFuncs).Parse(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>New Payment Received</h1>
    <p>A new payment has been received for booking ID: {{.BookingID}}</p>
    <h2>Payment Details</h2>
    <ul>
      <li><strong>Transaction ID:</strong> {{.TransactionID}}</li>
      <li><strong>Amount:</strong> {{.Amount}} {{.Currency}}</li>
      <li><strong>Customer:</strong> {{.CustomerName}}</li>
      <li><strong>Equipment:</strong> {{.EquipmentName}}</li>
      <li><strong>Location:</strong> {{.Location}}</li>
      <li><strong>Date:</strong> {{date .BookingDate}}</li>
    </ul>
    <p>Please log in to the admin dashboard to manage this booking.</p>
  </div>
</body>
</html>`))

func RenderBookingConfirmation(data BookingEmailData) (string, error) {
	return render(bookingConfirmationTmpl, data)
}

func RenderBookingCancellation(data BookingEmailData) (string, error) {
	return render(bookingCancellationTmpl, data)
}

func RenderPaymentReceived(data PaymentEmailData) (string, error) {
	return render(paymentReceivedTmpl, data)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
