package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/config"
	"vidhub.com/pkg/mq"
	"vidhub.com/pkg/search"
)

// 消费视频事件并同步到elasticsearch
func main() {
	config.Init()
	cfg := config.ConfigInfo

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index, err := search.NewElasticIndex(cfg.Elastic.URL, cfg.Elastic.Index)
	if err != nil {
		hlog.Fatalf("connect elasticsearch failed: %v", err)
	}
	if err := index.EnsureIndex(ctx); err != nil {
		hlog.Fatalf("ensure index %s failed: %v", cfg.Elastic.Index, err)
	}

	consumer, err := mq.NewConsumer(config.RabbitMQURL())
	if err != nil {
		hlog.Fatalf("connect rabbitmq failed: %v", err)
	}
	defer consumer.Close()

	hlog.Infof("indexer started, syncing %s into index %s", mq.VideoIndexQueue, cfg.Elastic.Index)
	if err := consumer.ConsumeVideoEvents(ctx, index); err != nil {
		hlog.Errorf("consume video events stopped: %v", err)
	}
}
