package cmd

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	KafkaHost             string
	KafkaOrderEventsTopic string
	WhatsAppBaseURL       string
	WhatsAppAPIKey        string
	TariffBaseFeeKobo     int64
	TariffPerKmRateKobo   int64
	NotificationSchedule  string
}
