package main

import (
	"context"
	"net"
	"time"

	"git.aqq.me/go/app/appconf"
	"git.aqq.me/go/app/applog"
	"git.aqq.me/go/app/event"
	"git.aqq.me/go/app/launcher"
	"github.com/iph0/conf/envconf"
	"github.com/iph0/conf/fileconf"
	"github.com/kak-tus/healthcheck"
	"github.com/kak-tus/syslog-receiver/aggregator"
	"github.com/kak-tus/syslog-receiver/config"
	"github.com/kak-tus/syslog-receiver/listener"
	"github.com/kak-tus/syslog-receiver/message"
	"go.uber.org/zap"
)

const stopTimeout = time.Second * 30

func init() {
	fileLdr := fileconf.NewLoader("etc", "/etc")
	envLdr := envconf.NewLoader()

	appconf.RegisterLoader("file", fileLdr)
	appconf.RegisterLoader("env", envLdr)

	appconf.Require("file:syslog-receiver.yml")
	appconf.Require("env:^SYSLOG_", "env:^CLICKHOUSE_")
}

func main() {
	launcher.Run(func() error {
		cnf, err := config.NewConfig()
		if err != nil {
			return err
		}

		log := applog.GetLogger().Sugar()

		var cons listener.Consumer
		var agg *aggregator.Aggregator

		if cnf.Clickhouse.Addr != "" {
			agg, err = aggregator.NewAggregator(cnf, log)
			if err != nil {
				return err
			}

			agg.Start()
			cons = agg
		} else {
			cons = logConsumer{logger: log}
		}

		lst, err := listener.NewListener(cnf.Listener, log, cons)
		if err != nil {
			return err
		}

		if err := lst.Start(); err != nil {
			return err
		}

		healthcheck.Add("/healthcheck", func() (healthcheck.State, string) {
			return healthcheck.StatePassing, "ok"
		})

		event.Stop.AddHandler(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()

			if err := lst.Stop(ctx); err != nil {
				log.Error(err)
			}

			lst.Close()

			if agg != nil {
				agg.Stop()
			}

			return nil
		})

		return nil
	})
}

// logConsumer is the example consumer: it logs one line per message.
type logConsumer struct {
	logger *zap.SugaredLogger
}

func (c logConsumer) OnMessage(source net.Addr, msg message.Message) error {
	c.logger.Infow("Received message",
		"protocol", msg.Protocol,
		"source", source.String(),
		"priority", msg.Priority,
		"header", msg.Header,
		"msg", msg.Body,
	)

	return nil
}
