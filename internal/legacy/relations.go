package legacy

import (
	"context"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Asset is a file attached to an entry through an assets field.
type Asset struct {
	Filename string
	Volume   string
	Title    string
}

// AssetsMap groups assets by owning entry id, then by field handle.
type AssetsMap map[string]map[string][]Asset

// Field returns the assets of entry id attached through handle.
func (m AssetsMap) Field(id, handle string) []Asset {
	return m[id][handle]
}

// InstrumentSlot is one row of an instrumentation super table.
type InstrumentSlot struct {
	InstrumentUID string
	SortOrder     int
}

// Piece is one row of a recording's pieces matrix.
type Piece struct {
	WorkUID    string
	Performers string
}

// LoadAssets builds the asset relations of every live entry, preserving
// the relation sort order.
func LoadAssets(ctx context.Context, source Source) (AssetsMap, error) {
	logrus.Info("fetching asset relations")

	rows, err := source.Query(ctx, AssetsQuery)
	if err != nil {
		return nil, err
	}

	assets := make(AssetsMap)
	for _, row := range rows {
		f := Fields(row, 5)
		sourceID, handle := f[0], f[1]
		if assets[sourceID] == nil {
			assets[sourceID] = make(map[string][]Asset)
		}
		assets[sourceID][handle] = append(assets[sourceID][handle], Asset{
			Filename: f[2],
			Volume:   f[3],
			Title:    f[4],
		})
	}

	return assets, nil
}

// LoadInstrumentation builds owner id to instrument slots from one of the
// instrumentation queries. Slots keep their sortOrder sequence.
func LoadInstrumentation(ctx context.Context, source Source, query string) (map[string][]InstrumentSlot, error) {
	rows, err := source.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	slots := make(map[string][]InstrumentSlot)
	for _, row := range rows {
		f := Fields(row, 3)
		order, err := strconv.Atoi(f[2])
		if err != nil {
			logrus.Warnf("instrumentation row for %s has sort order %q", f[0], f[2])
		}
		slots[f[0]] = append(slots[f[0]], InstrumentSlot{InstrumentUID: f[1], SortOrder: order})
	}

	for _, list := range slots {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].SortOrder < list[j].SortOrder
		})
	}

	return slots, nil
}

// LoadParents maps child entry id to the UID of its structure parent.
func LoadParents(ctx context.Context, source Source) (map[string]string, error) {
	rows, err := source.Query(ctx, HierarchyQuery)
	if err != nil {
		return nil, err
	}

	parents := make(map[string]string)
	for _, row := range rows {
		f := Fields(row, 2)
		if f[1] != "" {
			parents[f[0]] = f[1]
		}
	}

	return parents, nil
}

// LoadPieces maps recording id to its pieces. Matrix blocks without a
// related work are skipped.
func LoadPieces(ctx context.Context, source Source) (map[string][]Piece, error) {
	rows, err := source.Query(ctx, PiecesQuery)
	if err != nil {
		return nil, err
	}

	pieces := make(map[string][]Piece)
	for _, row := range rows {
		f := Fields(row, 3)
		if _, ok := pieces[f[0]]; !ok {
			pieces[f[0]] = []Piece{}
		}
		if f[1] == "" {
			continue
		}
		pieces[f[0]] = append(pieces[f[0]], Piece{WorkUID: f[1], Performers: f[2]})
	}

	return pieces, nil
}

// LoadRelated maps source entry id to the UIDs returned by a two column
// relation query.
func LoadRelated(ctx context.Context, source Source, query string) (map[string][]string, error) {
	rows, err := source.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	related := make(map[string][]string)
	for _, row := range rows {
		f := Fields(row, 2)
		if f[1] == "" {
			continue
		}
		related[f[0]] = append(related[f[0]], f[1])
	}

	return related, nil
}
