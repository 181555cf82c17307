package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gogo/protobuf/jsonpb"
	"github.com/gogo/protobuf/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	dbm "github.com/tendermint/tm-db"

	"github.com/tendermint/ics10-grandpa/config"
	"github.com/tendermint/ics10-grandpa/light"
	dbs "github.com/tendermint/ics10-grandpa/light/store/db"
)

const dbName = "light"

var (
	jsonpbMarshaller = jsonpb.Marshaler{
		EnumsAsInts:  true,
		EmitDefaults: false,
		Indent:       "  ",
	}
	jsonpbUnmarshaller = jsonpb.Unmarshaler{}
)

// clientEnv is a light client opened from the configured database.
type clientEnv struct {
	*light.Client

	db dbm.DB
}

// openClient opens the database and binds a light client to clientID.
func openClient(clientID string) (*clientEnv, error) {
	db, err := config.DefaultDBProvider(&config.DBContext{ID: dbName, Config: conf})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	metrics := light.NopMetrics()
	if conf.Instrumentation.Prometheus {
		metrics = light.PrometheusMetrics(conf.Instrumentation.Namespace, "client_id", clientID)
	}

	c := light.NewClient(clientID, dbs.New(db, clientID),
		light.Logger(logger),
		light.WithMetrics(metrics),
		light.PruningSize(conf.Light.PruningSize),
	)
	return &clientEnv{Client: c, db: db}, nil
}

// Close writes the metrics textfile, if enabled, and closes the database.
func (e *clientEnv) Close() error {
	if conf.Instrumentation.Prometheus {
		path := conf.Instrumentation.TextfilePath(conf.RootDir)
		if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
			logger.Error("failed to write metrics", "path", path, "err", err)
		}
	}
	return e.db.Close()
}

// closeClient closes c and reports its error through errp unless the command
// already failed.
func closeClient(c *clientEnv, errp *error) {
	if cerr := c.Close(); cerr != nil && *errp == nil {
		*errp = cerr
	}
}

// readProto decodes the protobuf JSON in path, or stdin for "-", into msg.
func readProto(path string, msg proto.Message) error {
	var (
		bz  []byte
		err error
	)
	if path == "-" {
		bz, err = io.ReadAll(os.Stdin)
	} else {
		bz, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	if err := jsonpbUnmarshaller.Unmarshal(bytes.NewReader(bz), msg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func marshalProto(msg proto.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := jsonpbMarshaller.Marshal(&buf, msg); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// printProto writes msg as protobuf JSON to the command output.
func printProto(cmd *cobra.Command, msg proto.Message) error {
	bz, err := marshalProto(msg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(bz)
	return err
}
