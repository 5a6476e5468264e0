// Package factory builds versecrypt pipelines from configuration.
//
// Configuration is an interfaces.PipelineConfig read from an optional YAML
// file and then overridden from the environment. NewPipeline turns it into a
// ready pipeline: the corpus is loaded, the cipher suite resolved, the log
// level applied and the metrics registered.
//
// # Configuration
//
// A YAML file uses the PipelineConfig field tags:
//
//	corpusPath: /etc/versecrypt/words.txt
//	cipher: chacha20-poly1305
//	maxPlaintextSize: 8192
//	logLevel: warn
//
// The following environment variables override the file:
//   - VERSECRYPT_CORPUS_PATH: path to a newline-delimited word list
//   - VERSECRYPT_CIPHER: "aes-256-gcm" or "chacha20-poly1305"
//   - VERSECRYPT_MAX_PLAINTEXT: integer bytes, 1 to 65536
//   - VERSECRYPT_LOG_LEVEL: a logrus level name
//
// An environment value that does not parse, or is out of bounds, is logged at
// Warn and the previous value is kept.
//
// # Usage
//
//	config, err := factory.LoadConfig("versecrypt.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline, err := factory.NewPipeline(config, prometheus.DefaultRegisterer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both parties must use the same corpus and cipher; compare
// pipeline.Corpus().Fingerprint() when in doubt.
package factory
