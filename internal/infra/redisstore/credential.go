package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wallet-screening/internal/domain/credential"
	"wallet-screening/internal/infra"
)

const (
	fieldKeyID      = "key_id"
	fieldCustomerID = "customer_id"
	fieldName       = "name"
	fieldTier       = "tier"
	fieldCreatedAt  = "created_at"
	fieldLastUsedAt = "last_used_at"
	fieldUsageCount = "usage_count"
	fieldIsActive   = "is_active"
	fieldRPM        = "requests_per_minute"
	fieldRPD        = "requests_per_day"
	fieldMetadata   = "metadata"
)

// CredentialStore keeps one hash per key, a secret-digest index and a per-customer set.
type CredentialStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewCredentialStore(rdb *redis.Client, logger *slog.Logger) *CredentialStore {
	return &CredentialStore{rdb: rdb, logger: logger}
}

func (s *CredentialStore) Create(ctx context.Context, rec credential.Record, secretHash string) error {
	fields, err := encodeRecord(rec)
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindDecodeFailure, "failed to encode credential", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, credentialKey(rec.KeyID), fields)
		pipe.Set(ctx, credentialLookupKey(secretHash), rec.KeyID, 0)
		pipe.SAdd(ctx, customerKeysKey(rec.CustomerID), rec.KeyID)
		return nil
	})
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to create credential", err)
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, keyID string) (*credential.Record, error) {
	fields, err := s.rdb.HGetAll(ctx, credentialKey(keyID)).Result()
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to get credential", err)
	}
	// A hash without key_id is either missing or a stray usage counter; neither is a credential.
	if fields[fieldKeyID] == "" {
		return nil, infra.WrapStoreErr(s.logger, infra.KindNotFound, "credential not found", nil)
	}
	rec, err := decodeRecord(fields)
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindDecodeFailure, "failed to decode credential", err)
	}
	return rec, nil
}

// FindBySecretHash resolves the lookup index and then re-reads the primary record,
// so an index entry left behind by a hard delete resolves to NOT_FOUND.
func (s *CredentialStore) FindBySecretHash(ctx context.Context, secretHash string) (*credential.Record, error) {
	keyID, err := s.rdb.Get(ctx, credentialLookupKey(secretHash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, infra.WrapStoreErr(s.logger, infra.KindNotFound, "credential lookup not found", nil)
	}
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to resolve credential lookup", err)
	}
	return s.Get(ctx, keyID)
}

func (s *CredentialStore) ListByCustomer(ctx context.Context, customerID string) ([]*credential.Record, error) {
	ids, err := s.rdb.SMembers(ctx, customerKeysKey(customerID)).Result()
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to list customer credentials", err)
	}

	out := make([]*credential.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if infra.IsKind(err, infra.KindNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *CredentialStore) SetActive(ctx context.Context, keyID string, active bool) error {
	if err := s.mustExist(ctx, keyID); err != nil {
		return err
	}
	if err := s.rdb.HSet(ctx, credentialKey(keyID), fieldIsActive, strconv.FormatBool(active)).Err(); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to update credential state", err)
	}
	return nil
}

func (s *CredentialStore) UpdateTier(ctx context.Context, keyID string, tier credential.Tier, limits credential.Limits) error {
	if err := s.mustExist(ctx, keyID); err != nil {
		return err
	}
	err := s.rdb.HSet(ctx, credentialKey(keyID),
		fieldTier, string(tier),
		fieldRPM, strconv.FormatInt(limits.RequestsPerMinute, 10),
		fieldRPD, strconv.FormatInt(limits.RequestsPerDay, 10),
	).Err()
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to update credential tier", err)
	}
	return nil
}

// Delete removes the record and its customer membership. The lookup index entry
// is not reachable from the record, so it is left in place.
func (s *CredentialStore) Delete(ctx context.Context, keyID string) error {
	rec, err := s.Get(ctx, keyID)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, credentialKey(keyID))
		pipe.SRem(ctx, customerKeysKey(rec.CustomerID), keyID)
		return nil
	})
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to delete credential", err)
	}
	return nil
}

func (s *CredentialStore) TouchUsage(ctx context.Context, keyID string, at time.Time) error {
	if err := s.mustExist(ctx, keyID); err != nil {
		return err
	}
	_, err := s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, credentialKey(keyID), fieldUsageCount, 1)
		pipe.HSet(ctx, credentialKey(keyID), fieldLastUsedAt, at.UTC().Format(time.RFC3339Nano))
		return nil
	})
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to record credential usage", err)
	}
	return nil
}

func (s *CredentialStore) mustExist(ctx context.Context, keyID string) error {
	exists, err := s.rdb.HExists(ctx, credentialKey(keyID), fieldKeyID).Result()
	if err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to check credential", err)
	}
	if !exists {
		return infra.WrapStoreErr(s.logger, infra.KindNotFound, "credential not found", nil)
	}
	return nil
}

func encodeRecord(rec credential.Record) (map[string]any, error) {
	metadata := "{}"
	if len(rec.Metadata) > 0 {
		b, err := json.Marshal(rec.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = string(b)
	}
	fields := map[string]any{
		fieldKeyID:      rec.KeyID,
		fieldCustomerID: rec.CustomerID,
		fieldName:       rec.Name,
		fieldTier:       string(rec.Tier),
		fieldCreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		fieldUsageCount: strconv.FormatInt(rec.UsageCount, 10),
		fieldIsActive:   strconv.FormatBool(rec.Active),
		fieldRPM:        strconv.FormatInt(rec.Limits.RequestsPerMinute, 10),
		fieldRPD:        strconv.FormatInt(rec.Limits.RequestsPerDay, 10),
		fieldMetadata:   metadata,
	}
	if rec.LastUsedAt != nil {
		fields[fieldLastUsedAt] = rec.LastUsedAt.UTC().Format(time.RFC3339Nano)
	}
	return fields, nil
}

func decodeRecord(fields map[string]string) (*credential.Record, error) {
	rec := &credential.Record{
		KeyID:      fields[fieldKeyID],
		CustomerID: fields[fieldCustomerID],
		Name:       fields[fieldName],
		Tier:       credential.Tier(fields[fieldTier]),
		Active:     fields[fieldIsActive] == "true",
	}

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, fields[fieldCreatedAt]); err != nil {
		return nil, err
	}
	if v := fields[fieldLastUsedAt]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, err
		}
		rec.LastUsedAt = &t
	}
	if rec.UsageCount, err = parseInt(fields[fieldUsageCount]); err != nil {
		return nil, err
	}
	if rec.Limits.RequestsPerMinute, err = parseInt(fields[fieldRPM]); err != nil {
		return nil, err
	}
	if rec.Limits.RequestsPerDay, err = parseInt(fields[fieldRPD]); err != nil {
		return nil, err
	}
	if v := fields[fieldMetadata]; v != "" && v != "{}" {
		if err := json.Unmarshal([]byte(v), &rec.Metadata); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func parseInt(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
