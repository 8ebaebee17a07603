package main

import (
	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wiless/cdma"
)

// SimConfig holds the app parameters
type SimConfig struct {
	Order        int
	NoisePower   float64
	Trials       int
	ErrThreshold float64
	Seed         uint64
}

var cfg SimConfig

// ReadAppConfig reads all the configuration for the app. Flag values act
// as defaults; an optional cdmasim.json in indir wins over them.
func ReadAppConfig() {
	viper.AddConfigPath(indir)
	viper.SetConfigName("cdmasim")

	// Set all the default values
	{
		viper.SetDefault("Order", order)
		viper.SetDefault("NoisePower", noisePower)
		viper.SetDefault("Trials", trials)
		viper.SetDefault("ErrThreshold", cdma.DefaultErrThreshold)
		viper.SetDefault("Seed", 0)
	}

	err := viper.ReadInConfig()
	if err != nil {
		log.Print("ReadAppConfig : no config file, using defaults : ", err)
	}

	if err := ms.Decode(viper.AllSettings(), &cfg); err != nil {
		log.Fatal("ReadAppConfig : ", err)
	}
	log.Println("Config ", cfg)
}
