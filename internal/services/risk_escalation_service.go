package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/crackwatch/monitor-service/internal/config"
	"github.com/crackwatch/monitor-service/internal/metrics"
	"github.com/crackwatch/monitor-service/internal/repositories"
	"github.com/crackwatch/monitor-service/internal/utils"
)

const escalationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: monospace; line-height: 1.5; }
  .container { border: 1px solid #ccc; padding: 15px; max-width: 600px; }
  h2 { margin-top: 0; color: #c0392b; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
</style>
</head>
<body>
  <div class="container">
    <h2>High crack-growth alert</h2>
    <ul>
      <li><strong>Building:</strong> %s</li>
      <li><strong>Address:</strong> %s</li>
      <li><strong>Waypoints:</strong> %s</li>
      <li><strong>Timestamp (UTC):</strong> %s</li>
    </ul>
  </div>
</body>
</html>`

// RiskEscalationService sweeps the store on a schedule, flags
// waypoints whose growth rate entered the high band and notifies the
// configured recipients. A waypoint is alerted once per process
// lifetime unless it drops out of the high band and re-enters.
type RiskEscalationService struct {
	cfg            *config.Config
	repo           repositories.BuildingRepository
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client

	mu      sync.Mutex
	alerted map[string]bool // buildingID + "/" + waypointID
}

func NewRiskEscalationService(cfg *config.Config, repo repositories.BuildingRepository) *RiskEscalationService {
	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}

	return &RiskEscalationService{
		cfg:            cfg,
		repo:           repo,
		twilioClient:   twClient,
		sendgridClient: sgClient,
		alerted:        make(map[string]bool),
	}
}

// RunRiskSweep recomputes the risk ranking of every building and
// escalates newly-high waypoints.
func (s *RiskEscalationService) RunRiskSweep(ctx context.Context) error {
	utils.Logger.Debug("Running crack-growth risk sweep...")

	buildings, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	for i := range buildings {
		b := &buildings[i]

		var newlyHigh []string
		for _, point := range metrics.RiskRanking(b) {
			key := b.ID + "/" + point.WaypointID

			s.mu.Lock()
			if point.RiskLevel == metrics.RiskLevelHigh {
				if !s.alerted[key] {
					s.alerted[key] = true
					newlyHigh = append(newlyHigh,
						fmt.Sprintf("%s (%s)", point.ID, point.Rate))
				}
			} else {
				delete(s.alerted, key)
			}
			s.mu.Unlock()
		}

		if len(newlyHigh) > 0 {
			s.notify(b.Name, b.Address, newlyHigh)
		}
	}
	return nil
}

// RunDailyBackup copies the data file into the backup directory.
func (s *RiskEscalationService) RunDailyBackup(ctx context.Context) error {
	dst, err := s.repo.Backup(ctx, s.cfg.BackupDir)
	if err != nil {
		return err
	}
	utils.Logger.Infof("Data file backed up to %s", dst)
	return nil
}

func (s *RiskEscalationService) notify(buildingName, address string, waypoints []string) {
	subject := fmt.Sprintf("[Crack Alert] %s: %d waypoint(s) expanding at high rate", buildingName, len(waypoints))
	plainText := fmt.Sprintf(
		"High crack-growth detected.\n\nBuilding: %s\nAddress: %s\nWaypoints: %s",
		buildingName, address, strings.Join(waypoints, ", "),
	)

	// ---------- Twilio SMS ----------
	if s.twilioClient != nil {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(s.cfg.AlertToPhone)
		params.SetFrom(s.cfg.TwilioFromPhone)
		params.SetBody(subject + " :: " + plainText)
		if _, smsErr := s.twilioClient.Api.CreateMessage(params); smsErr != nil {
			utils.Logger.WithError(smsErr).Warnf("Failed to send alert SMS for building %s", buildingName)
		}
	} else {
		utils.Logger.Debugf("Twilio client is nil, skipping SMS alert for %s", buildingName)
	}

	// ---------- SendGrid Email ----------
	if s.sendgridClient != nil {
		from := mail.NewEmail(s.cfg.AppName, s.cfg.AlertFromEmail)
		to := mail.NewEmail("", s.cfg.AlertToEmail)
		htmlBody := fmt.Sprintf(
			escalationEmailHTML,
			buildingName,
			address,
			strings.Join(waypoints, ", "),
			time.Now().UTC().Format(time.RFC1123Z),
		)
		msg := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)
		if _, sgErr := s.sendgridClient.Send(msg); sgErr != nil {
			utils.Logger.WithError(sgErr).Warnf("Failed to send alert email for building %s", buildingName)
		}
	} else {
		utils.Logger.Debugf("SendGrid client is nil, skipping email alert for %s", buildingName)
	}

	utils.Logger.Warnf("Escalated high-risk waypoints on %s: %s", buildingName, strings.Join(waypoints, ", "))
}
