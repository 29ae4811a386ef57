package schema

type Config struct {
	Mysql     string `yaml:"mysql"`
	UseSqlite bool   `yaml:"useSqlite"`
	SqliteDir string `yaml:"sqliteDir"`
	Port      string `yaml:"port"`

	BoltDir      string `yaml:"boltDir"`
	PaymentMint  string `yaml:"paymentMint"`
	EnableFaucet bool   `yaml:"enableFaucet"`

	Kafka Kafka `yaml:"kafka"`
}

type Kafka struct {
	Start bool   `yaml:"start"`
	Uri   string `yaml:"uri"`
}
