package config

import (
	"github.com/iph0/conf"
	"github.com/iph0/conf/envconf"
	"github.com/iph0/conf/fileconf"
)

type Config struct {
	Listener   ListenerConfig
	Aggregator AggregatorConfig
	Clickhouse ClickhouseConfig
}

// ListenerConfig configures the syslog listener. A zero port disables that
// transport; at least one transport must be enabled. An empty BindAddress
// binds every interface, dual-stack.
type ListenerConfig struct {
	BindAddress string
	UDPPort     int
	TCPPort     int
}

type AggregatorConfig struct {
	PartitionFormat string
	Period          int
	Batch           int
}

// ClickhouseConfig configures the optional ClickHouse sink. An empty Addr
// disables the sink.
type ClickhouseConfig struct {
	Addr string
}

func NewConfig() (*Config, error) {
	fileLdr := fileconf.NewLoader("etc", "/etc")
	envLdr := envconf.NewLoader()

	configProc := conf.NewProcessor(
		conf.ProcessorConfig{
			Loaders: map[string]conf.Loader{
				"file": fileLdr,
				"env":  envLdr,
			},
		},
	)

	configRaw, err := configProc.Load(
		"file:syslog-receiver.yml",
		"env:^SYSLOG_",
		"env:^CLICKHOUSE_",
	)

	if err != nil {
		return nil, err
	}

	var cnf Config
	if err := conf.Decode(configRaw, &cnf); err != nil {
		return nil, err
	}

	return &cnf, nil
}
