package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanikLP1/qiniu-stats/internal/auth"
	"github.com/DanikLP1/qiniu-stats/internal/db"
	"github.com/DanikLP1/qiniu-stats/internal/qiniu"
)

// SyncBuckets discovers buckets for every valid account and upserts the
// Bucket rows (region, первый домен, privacy, lastSyncTime).
func (s *Syncer) SyncBuckets(ctx context.Context, rep Reporter) error {
	accounts, err := s.db.ListValidAccounts()
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		s.logger.Warn("discovery.no_valid_accounts")
		text(rep, "no valid accounts configured")
		return nil
	}

	for _, account := range accounts {
		s.syncBucketsForAccount(ctx, account, rep)
	}

	text(rep, "bucket discovery finished for all accounts")
	return nil
}

func (s *Syncer) syncBucketsForAccount(ctx context.Context, account db.Account, rep Reporter) {
	log := s.logger.With(slog.String("account", account.Name))
	text(rep, fmt.Sprintf("discovering buckets for account [%s]", account.Name))

	cred := auth.Credentials{AccessKey: account.AccessKey, SecretKey: account.SecretKey}

	names, err := s.client.ListBuckets(ctx, cred)
	if err != nil {
		msg := fmt.Sprintf("bucket list for account [%s] failed: %v", account.Name, err)
		log.Error("discovery.list_fail", "err", err)
		reportErr(rep, msg)
		return
	}

	for _, name := range names {
		if err := s.syncBucketInfo(ctx, account, cred, name); err != nil {
			msg := fmt.Sprintf("discovery of bucket [%s] failed: %v", name, err)
			log.Error("discovery.bucket_fail", "bucket", name, "err", err)
			reportErr(rep, msg)
			continue
		}
		text(rep, fmt.Sprintf("bucket [%s] synced", name))
	}

	log.Info("discovery.account_ok", "buckets", len(names))
}

func (s *Syncer) syncBucketInfo(ctx context.Context, account db.Account, cred auth.Credentials, name string) error {
	info, err := s.client.GetBucketInfo(ctx, cred, name)
	if err != nil {
		return fmt.Errorf("bucket info: %w", err)
	}
	if !qiniu.Region(info.Zone).Known() {
		// пишем как есть: провайдер может открыть регион раньше нас
		s.logger.Warn("discovery.unknown_region", "bucket", name, "zone", info.Zone)
	}

	domains, err := s.client.GetBucketDomains(ctx, cred, name)
	if err != nil {
		return fmt.Errorf("bucket domains: %w", err)
	}

	bucket, err := s.db.FindOrCreateBucket(account.ID, name)
	if err != nil {
		return fmt.Errorf("find bucket: %w", err)
	}

	bucket.Region = info.Zone
	if len(domains) > 0 {
		bucket.Domain = domains[0]
	}
	bucket.Private = info.Private
	now := s.clock.Now()
	bucket.LastSyncTime = &now
	bucket.Valid = true

	return s.db.SaveBucket(bucket)
}
