package aggregator

import (
	"encoding/json"
	"strings"

	"github.com/kshvakov/clickhouse"
)

// parse extracts structured fields from a JSON message body. It returns the
// remaining plain text followed by the nested-column arrays in insert order.
func (a *Aggregator) parse(body string) []interface{} {
	var stringNames []string
	var stringVals []string
	var numNames []string
	var numVals []float64
	var boolNames []string
	var boolVals []uint8
	var nullNames []string

	str := body

	if strings.HasPrefix(str, "{") && strings.HasSuffix(str, "}") {
		var parsed map[string]interface{}

		err := a.decoder.UnmarshalFromString(str, &parsed)
		if err == nil {
			str = ""

			for key, val := range parsed {
				switch conv := val.(type) {
				case string:
					stringNames = append(stringNames, key)
					stringVals = append(stringVals, conv)
				case json.Number:
					num, err := conv.Float64()
					if err != nil {
						stringNames = append(stringNames, key)
						stringVals = append(stringVals, conv.String())
						continue
					}

					numNames = append(numNames, key)
					numVals = append(numVals, num)
				case bool:
					var flag uint8
					if conv {
						flag = 1
					}

					boolNames = append(boolNames, key)
					boolVals = append(boolVals, flag)
				case nil:
					nullNames = append(nullNames, key)
				default:
					encoded, err := a.decoder.MarshalToString(val)
					if err != nil {
						continue
					}

					stringNames = append(stringNames, key)
					stringVals = append(stringVals, encoded)
				}
			}
		}
	}

	return []interface{}{
		str,
		clickhouse.Array(stringNames),
		clickhouse.Array(stringVals),
		clickhouse.Array(numNames),
		clickhouse.Array(numVals),
		clickhouse.Array(boolNames),
		clickhouse.Array(boolVals),
		clickhouse.Array(nullNames),
	}
}
