package main

import (
	"time"

	"git.solsynth.dev/hypernet/scribe/pkg/internal/database"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/gap"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/imagestore"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/spf13/viper"
)

func setDefaults() {
	viper.SetDefault("bind", "0.0.0.0:8445")
	viper.SetDefault("grpc_bind", "0.0.0.0:7445")
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("mq.workers", 4)
	viper.SetDefault("mq.prefetch", 8)
	viper.SetDefault("mq.drain_timeout", "30s")
	viper.SetDefault("images.provider", "imagekit")
	viper.SetDefault("images.default_extension", ".jpg")
	viper.SetDefault("images.upload_timeout", 10*time.Second)
	viper.SetDefault("images.pending_threshold", time.Hour)
	viper.SetDefault("images.audit_interval", "@every 30m")
	viper.SetDefault("services.user.timeout", 3*time.Second)
	viper.SetDefault("services.user.cache_ttl", time.Minute)
	viper.SetDefault("slug.language", "en")
}

func databaseConfig() database.Config {
	return database.Config{
		Driver: viper.GetString("database.driver"),
		Dsn:    viper.GetString("database.dsn"),
		Prefix: viper.GetString("database.prefix"),
		Debug:  viper.GetBool("debug"),
	}
}

func consumerConfig(queue string) mq.ConsumerConfig {
	return mq.ConsumerConfig{
		Queue:    queue,
		Workers:  viper.GetInt("mq.workers"),
		Prefetch: viper.GetInt("mq.prefetch"),
		Retry:    mq.DefaultRetryPolicy,
	}
}

func directoryConfig() gap.DirectoryConfig {
	return gap.DirectoryConfig{
		Address:  viper.GetString("services.user.address"),
		Timeout:  viper.GetDuration("services.user.timeout"),
		CacheTTL: viper.GetDuration("services.user.cache_ttl"),
	}
}

func imageConfig() services.ImageConfig {
	endpoint := viper.GetString("images.endpoint")
	if len(endpoint) == 0 {
		endpoint = viper.GetString("imagekit.url_endpoint")
	}
	return services.ImageConfig{
		Endpoint:         endpoint,
		Folder:           viper.GetString("images.folder"),
		DefaultExtension: viper.GetString("images.default_extension"),
	}
}

func imageStoreConfig() imagestore.Config {
	return imagestore.Config{
		Provider: viper.GetString("images.provider"),
		ImageKit: imagestore.ImageKitConfig{
			PublicKey:   viper.GetString("imagekit.public_key"),
			PrivateKey:  viper.GetString("imagekit.private_key"),
			UrlEndpoint: viper.GetString("imagekit.url_endpoint"),
		},
		S3: imagestore.S3Config{
			Endpoint:  viper.GetString("s3.endpoint"),
			Region:    viper.GetString("s3.region"),
			Bucket:    viper.GetString("s3.bucket"),
			AccessKey: viper.GetString("s3.access_key"),
			SecretKey: viper.GetString("s3.secret_key"),
			PublicURL: viper.GetString("images.endpoint"),
		},
	}
}
