package ratingfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/ratelab/internal/domain/rating"
)

// ReadStrength parses a "rank,score,player" file. Player names may contain
// commas because the name is the final field.
func ReadStrength(r io.Reader) (*rating.StrengthTable, error) {
	gammas := make(map[string]float64)
	if err := eachLine(r, func(line string) error {
		fields := strings.SplitN(line, ",", 3)
		if len(fields) != 3 {
			return fmt.Errorf("%w: %q", ErrBadRecord, line)
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadRecord, line, err)
		}
		gammas[strings.TrimSpace(fields[2])] = score
		return nil
	}); err != nil {
		return nil, err
	}
	return rating.NewStrengthTable(gammas), nil
}

// ReadGaussian parses a "rank,player,score,mu,sigma" file into a table
// with the given link kind and comparison beta. Player names may contain
// commas; mu and sigma are recovered from the line's tail.
func ReadGaussian(r io.Reader, kind rating.Kind, beta float64) (*rating.GaussianTable, error) {
	ratings := make(map[string]rating.Gaussian)
	if err := eachLine(r, func(line string) error {
		fields := strings.Split(line, ",")
		if len(fields) < 5 {
			return fmt.Errorf("%w: %q", ErrBadRecord, line)
		}
		sigma, err := strconv.ParseFloat(strings.TrimSpace(fields[len(fields)-1]), 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadRecord, line, err)
		}
		mu, err := strconv.ParseFloat(strings.TrimSpace(fields[len(fields)-2]), 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadRecord, line, err)
		}
		player := strings.TrimSpace(strings.Join(fields[1:len(fields)-3], ","))
		ratings[player] = rating.Gaussian{Mu: mu, Sigma: sigma}
		return nil
	}); err != nil {
		return nil, err
	}

	switch kind {
	case rating.KindLogistic:
		return rating.NewLogisticTable(ratings, beta), nil
	case rating.KindNormal:
		return rating.NewNormalTable(ratings, beta), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func eachLine(r io.Reader, parse func(line string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := parse(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
