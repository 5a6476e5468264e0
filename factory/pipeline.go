package factory

import (
	"errors"

	"github.com/opd-ai/versecrypt"
	"github.com/opd-ai/versecrypt/corpus"
	"github.com/opd-ai/versecrypt/crypto"
	"github.com/opd-ai/versecrypt/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// NewPipeline builds a pipeline from config. The corpus comes from
// config.CorpusPath, or the built-in list when the path is empty. A nil reg
// leaves the pipeline metrics unregistered.
func NewPipeline(config *interfaces.PipelineConfig, reg prometheus.Registerer) (*versecrypt.Pipeline, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ConfigureLogging(config); err != nil {
		return nil, err
	}

	suite, err := crypto.ParseCipherSuite(config.Cipher)
	if err != nil {
		return nil, err
	}

	provider := corpus.NewProvider()
	var c *corpus.Corpus
	if config.CorpusPath != "" {
		c, err = provider.LoadFile(config.CorpusPath)
	} else {
		c, err = provider.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewPipeline",
		"corpus_path": config.CorpusPath,
		"cipher":      suite.Name,
	}).Debug("Creating pipeline from configuration")

	options := versecrypt.NewOptions()
	options.Corpus = c
	options.Cipher = suite
	options.MaxPlaintextSize = config.MaxPlaintextSize
	options.Registerer = reg
	return versecrypt.New(options)
}
