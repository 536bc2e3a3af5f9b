package params

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// LoadChainConfigFile reads a yaml chain config from disk, applies it on top
// of the matching preset and makes it the active beacon config.
func LoadChainConfigFile(chainConfigFileName string) error {
	yamlFile, err := os.ReadFile(chainConfigFileName) // #nosec G304
	if err != nil {
		return errors.Wrap(err, "failed to read chain config file")
	}
	conf, err := UnmarshalConfig(yamlFile)
	if err != nil {
		return err
	}
	log.WithField("configName", conf.ConfigName).Debug("Loaded chain config file")
	OverrideBeaconConfig(conf)
	return nil
}

// UnmarshalConfig converts hex values into valid param yaml format and
// unmarshals the result onto a copy of the mainnet config, or of the minimal
// config when the file declares the minimal preset.
func UnmarshalConfig(yamlFile []byte) (*BeaconChainConfig, error) {
	conf := MainnetConfig().Copy()
	hasConfigName := false
	lines := strings.Split(string(yamlFile), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "CONFIG_NAME") {
			hasConfigName = true
		}
		if strings.HasPrefix(line, "PRESET_BASE: 'minimal'") ||
			strings.HasPrefix(line, `PRESET_BASE: "minimal"`) ||
			strings.HasPrefix(line, "PRESET_BASE: minimal") {
			conf = MinimalSpecConfig().Copy()
		}
		if !strings.HasPrefix(line, "#") && strings.Contains(line, "0x") {
			replaced, err := ReplaceHexStringWithYAMLFormat(line)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse line %d", i+1)
			}
			lines[i] = replaced
		}
	}
	yamlFile = []byte(strings.Join(lines, "\n"))
	if err := yaml.UnmarshalStrict(yamlFile, conf); err != nil {
		return nil, errors.Wrap(err, "failed to parse chain config yaml")
	}
	if !hasConfigName {
		conf.ConfigName = "devnet"
	}
	if err := validateConfig(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// ReplaceHexStringWithYAMLFormat rewrites a `KEY: 0x...` line so the yaml
// parser decodes the value into a byte or fixed size byte array.
func ReplaceHexStringWithYAMLFormat(line string) (string, error) {
	parts := strings.SplitN(line, "0x", 2)
	parts[0] = strings.TrimRight(parts[0], `'"`)
	decoded, err := hex.DecodeString(strings.TrimSpace(strings.Trim(parts[1], `'"`)))
	if err != nil {
		return "", errors.Wrap(err, "failed to decode hex string")
	}
	var value interface{}
	switch l := len(decoded); {
	case l == 1:
		value = decoded[0]
	case l > 1 && l <= 4:
		var arr [4]byte
		copy(arr[:], decoded)
		value = arr
	case l > 4 && l <= 32:
		var arr [32]byte
		copy(arr[:], decoded)
		value = arr
	default:
		return "", errors.Errorf("unsupported hex value length %d", l)
	}
	fixed, err := yaml.Marshal(value)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config value")
	}
	if _, ok := value.(byte); ok {
		return parts[0] + strings.TrimSpace(string(fixed)), nil
	}
	return parts[0] + "\n" + strings.TrimRight(string(fixed), "\n"), nil
}

func validateConfig(c *BeaconChainConfig) error {
	if c.SlotsPerEpoch == 0 {
		return errors.New("SLOTS_PER_EPOCH must be positive")
	}
	if c.MaxValidatorsPerCommittee == 0 {
		return errors.New("MAX_VALIDATORS_PER_COMMITTEE must be positive")
	}
	if c.MaxEpochHorizon == 0 || c.MaxEpochHorizon >= 1<<32 {
		return errors.Errorf("MAX_EPOCH_HORIZON must be in [1, 2^32), got %d", c.MaxEpochHorizon)
	}
	if c.SlotsPerHistoricalRoot == 0 || c.EpochsPerHistoricalVector == 0 || c.EpochsPerSlashingsVector == 0 {
		return errors.New("history vector lengths must be positive")
	}
	if c.EffectiveBalanceIncrement == 0 || c.HysteresisQuotient == 0 {
		return errors.New("EFFECTIVE_BALANCE_INCREMENT and HYSTERESIS_QUOTIENT must be positive")
	}
	if c.JustificationBitsLength != 4 {
		return errors.Errorf("JUSTIFICATION_BITS_LENGTH must be 4, got %d", c.JustificationBitsLength)
	}
	return nil
}
