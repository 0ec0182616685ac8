package clickhouse

import (
	"fmt"
	"math/rand"
	"time"
)

const createSQL = "CREATE TABLE logs.syslog%s" +
	" ( date Date, timestamp DateTime, host String, protocol String," +
	" facility String, level String, header String, msg String," +
	" string_fields Nested ( names String, values String )," +
	" number_fields Nested ( names String, values Float64 )," +
	" boolean_fields Nested ( names String, values UInt8 )," +
	" `null_fields.names` Array(String) )" +
	" ENGINE = MergeTree( date, ( timestamp, level, host ), 32768 );"

// CreatePartitions keeps hourly partition tables present until Stop.
func (d *DB) CreatePartitions(partitionFormat string) {
	ticker := time.NewTicker(time.Hour + time.Second*time.Duration(rand.Intn(100)))

	for {
		d.checkPartitions(partitionFormat)

		select {
		case <-ticker.C:
		case <-d.stop:
			d.logger.Info("Stop partitions creation")
			ticker.Stop()
			return
		}
	}
}

func (d *DB) checkPartitions(partitionFormat string) {
	d.logger.Info("Check partitions")

	// Start some time ago to recreate partitions
	// in case of stopped daemon
	dt := time.Now().Add(-time.Hour * 24)

	for i := 1; i <= 48; i++ {
		partition := dt.Format(partitionFormat)
		dt = dt.Add(time.Hour)

		sql := "SELECT 1 FROM system.tables WHERE database = 'logs' AND name = 'syslog" +
			partition + "';"

		rows, err := d.DB.Query(sql)
		if err != nil {
			d.logger.Error(err)
			continue
		}

		if rows.Next() {
			rows.Close()
			continue
		}

		rows.Close()
		d.logger.Info("Create partition " + partition)

		_, err = d.DB.Exec(fmt.Sprintf(createSQL, partition))
		if err != nil {
			d.logger.Error(err)
			continue
		}
	}
}
