package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"AgentsFoodBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	OpenAI struct {
		ApiKey string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model  string `yaml:"model" env-default:"gpt-3.5-turbo"`
	} `yaml:"openai"`
	WhatsApp struct {
		AccessToken   string `yaml:"access_token" env:"WHATSAPP_TOKEN" env-default:""`
		VerifyToken   string `yaml:"verify_token" env:"WHATSAPP_VERIFY_TOKEN" env-default:"verify-token"`
		AppSecret     string `yaml:"app_secret" env:"WHATSAPP_APP_SECRET" env-default:""`
		PhoneNumberID string `yaml:"phone_number_id" env:"WHATSAPP_PHONE_NUMBER_ID" env-default:""`
	} `yaml:"whatsapp"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:"agentsfood"`
	} `yaml:"mongo"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
