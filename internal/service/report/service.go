package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
)

const clinicName = "Future Smile Clinic"

// Service renders printable PDF reports for front-desk staff.
type Service struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	now          func() time.Time
}

func NewService(appointments repository.AppointmentRepository, patients repository.PatientRepository) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		now:          time.Now,
	}
}

// AppointmentReport renders a one-page summary of a single appointment.
func (s *Service) AppointmentReport(ctx context.Context, id uuid.UUID) ([]byte, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := newDocument(clinicName + " - Appointment Report")
	doc.detailTable([][2]string{
		{"Booking ID", apt.BookingID},
		{"Patient", apt.PatientName},
		{"Service", apt.ServiceName},
		{"Date", apt.AppointmentDate},
		{"Time", apt.AppointmentTime},
		{"Status", string(apt.Status)},
		{"Notes", orDash(apt.Notes)},
	})
	doc.footer(s.now())

	return doc.bytes()
}

// PatientReport renders the patient's details followed by their appointment
// history, most recent first.
func (s *Service) PatientReport(ctx context.Context, id uuid.UUID) ([]byte, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.appointments.List(ctx, &model.AppointmentFilters{PatientID: patient.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment history: %w", err)
	}

	doc := newDocument(clinicName + " - Patient Report")
	doc.detailTable([][2]string{
		{"Full name", patient.FullName},
		{"Phone", patient.Phone},
		{"Email", orDash(deref(patient.Email))},
		{"Date of birth", orDash(deref(patient.DateOfBirth))},
		{"Address", orDash(deref(patient.Address))},
	})

	doc.sectionTitle(fmt.Sprintf("Appointment history (%d)", len(history)))
	rows := make([][]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		apt := history[i]
		rows = append(rows, []string{
			apt.BookingID, apt.AppointmentDate, apt.AppointmentTime,
			apt.ServiceName, string(apt.Status),
		})
	}
	doc.historyTable([]string{"Booking", "Date", "Time", "Service", "Status"}, rows)
	doc.footer(s.now())

	return doc.bytes()
}

// document wraps fpdf with the few layout helpers the reports share.
type document struct {
	pdf *fpdf.Fpdf
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(6)
	return &document{pdf: pdf}
}

func (d *document) detailTable(rows [][2]string) {
	for _, row := range rows {
		d.pdf.SetFont("Helvetica", "B", 11)
		d.pdf.CellFormat(50, 9, row[0], "1", 0, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", 11)
		d.pdf.CellFormat(0, 9, row[1], "1", 1, "L", false, 0, "")
	}
	d.pdf.Ln(6)
}

func (d *document) sectionTitle(title string) {
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
}

func (d *document) historyTable(headers []string, rows [][]string) {
	widths := []float64{42, 28, 18, 52, 30}

	d.pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		d.pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 10)
	if len(rows) == 0 {
		d.pdf.CellFormat(170, 8, "No appointments on record", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for i, cell := range row {
			d.pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

func (d *document) footer(now time.Time) {
	d.pdf.Ln(10)
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.CellFormat(0, 8, "Generated on: "+now.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
