package config

import (
	"os"
	"time"

	"github.com/crackwatch/monitor-service/internal/utils"
)

const AppName = "crackwatch-monitor"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Flat-file store
	DataFilePath string
	BackupDir    string

	// External geocoder (optional: the search endpoint is disabled
	// without it)
	KakaoRESTAPIKey string

	// Alerting (optional as a group; nil clients skip delivery)
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string
	SendGridAPIKey   string
	AlertFromEmail   string
	AlertToEmail     string
	AlertToPhone     string

	RiskSweepInterval time.Duration
}

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dataFile := os.Getenv("DATA_FILE_PATH")
	if dataFile == "" {
		utils.Logger.Fatal("DATA_FILE_PATH env var is missing")
	}

	backupDir := os.Getenv("BACKUP_DIR")
	if backupDir == "" {
		backupDir = "backups"
	}

	kakaoKey := os.Getenv("KAKAO_REST_API_KEY")
	if kakaoKey == "" {
		utils.Logger.Warn("KAKAO_REST_API_KEY not set; geocode search endpoint disabled")
	}

	// Alerting is all-or-nothing per transport: a partially configured
	// transport is treated as absent.
	twilioSID := os.Getenv("TWILIO_ACCOUNT_SID")
	twilioToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twilioFrom := os.Getenv("TWILIO_FROM_PHONE")
	alertToPhone := os.Getenv("ALERT_TO_PHONE")
	if twilioSID == "" || twilioToken == "" || twilioFrom == "" || alertToPhone == "" {
		if twilioSID != "" || twilioToken != "" || twilioFrom != "" || alertToPhone != "" {
			utils.Logger.Warn("Incomplete Twilio configuration; SMS alerts disabled")
		}
		twilioSID, twilioToken, twilioFrom, alertToPhone = "", "", "", ""
	}

	sgKey := os.Getenv("SENDGRID_API_KEY")
	alertFrom := os.Getenv("ALERT_FROM_EMAIL")
	alertTo := os.Getenv("ALERT_TO_EMAIL")
	if sgKey == "" || alertFrom == "" || alertTo == "" {
		if sgKey != "" || alertFrom != "" || alertTo != "" {
			utils.Logger.Warn("Incomplete SendGrid configuration; email alerts disabled")
		}
		sgKey, alertFrom, alertTo = "", "", ""
	}

	sweepInterval := time.Hour
	if raw := os.Getenv("RISK_SWEEP_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			utils.Logger.Warnf("Invalid RISK_SWEEP_INTERVAL '%s', defaulting to 1h", raw)
		} else {
			sweepInterval = parsed
		}
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)

	return &Config{
		AppName:           AppName,
		AppPort:           appPort,
		AppUrl:            appUrl,
		DataFilePath:      dataFile,
		BackupDir:         backupDir,
		KakaoRESTAPIKey:   kakaoKey,
		TwilioAccountSID:  twilioSID,
		TwilioAuthToken:   twilioToken,
		TwilioFromPhone:   twilioFrom,
		SendGridAPIKey:    sgKey,
		AlertFromEmail:    alertFrom,
		AlertToEmail:      alertTo,
		AlertToPhone:      alertToPhone,
		RiskSweepInterval: sweepInterval,
	}
}

func (c *Config) Close() {}
