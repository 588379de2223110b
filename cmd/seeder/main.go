package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/doctrina"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/ingestion"
)

// documents is a small built-in corpus of policy excerpts used to exercise
// the full ingest path without a real document set on disk.
var documents = []ingestion.Source{
	{
		ID:    "afi-44-102",
		Kind:  core.SourceKindFile,
		Title: "AFI 44-102 Medical Care Management",
		Text: `AFI 44-102 Medical Care Management

1. Access to Care
1.1. Access Standards. Routine appointments shall be available within
seven calendar days of the request. Urgent care appointments shall be
available within 24 hours. Specialty care referrals shall be booked
within 28 calendar days of the referral date.
1.2. Wait Times. Office wait times for scheduled appointments should
not exceed 30 minutes except when emergencies cause unavoidable delay.

2. Patient Safety
2.1. Event Reporting. All patient safety events, including near misses,
shall be reported through the patient safety reporting system within
three duty days of discovery.
2.2. Sentinel Events. Sentinel events require immediate notification of
the MTF commander and a root cause analysis completed within 45 days.

3. Health Records
3.1. Documentation. Every patient encounter shall be documented in the
electronic health record before the end of the duty day.`,
	},
	{
		ID:    "dafi-36-3003",
		Kind:  core.SourceKindFile,
		Title: "DAFI 36-3003 Military Leave Program",
		Text: `DAFI 36-3003 Military Leave Program

1. Leave Accrual
1.1. Members accrue 2.5 days of leave for each month of active service.
1.2. Accrued leave in excess of 60 days is forfeited at the end of the
fiscal year unless special leave accrual applies.

2. Leave Approval
2.1. Unit commanders or their designated representatives approve
ordinary leave. Approval authority may not be delegated below the
flight commander or equivalent level.
2.2. Emergency leave requests shall be processed within 24 hours.

3. Convalescent Leave
3.1. Convalescent leave is a non-chargeable absence authorized by the
attending physician and approved by the unit commander, normally not to
exceed 30 days per episode of care.`,
	},
	{
		ID:    "jtr-appendix",
		Kind:  core.SourceKindFile,
		Title: "JTR Travel and Transportation Allowances",
		Text: `JTR Travel and Transportation Allowances

1. Per Diem
1.1. Per diem consists of lodging, meals, and incidental expenses. The
locality rate for the temporary duty location applies.
1.2. Lodging receipts are required for reimbursement of any lodging
expense regardless of amount.

2. Permanent Change of Station
2.1. Household goods shipment entitlements are based on grade and
dependency status as listed in the weight allowance table.
2.2. Dependent travel is authorized to the new permanent duty station
via the official distance of the ordered route.`,
	},
	{
		ID:    "msc-mentor-guide",
		Kind:  core.SourceKindFile,
		Title: "MSC Mentor Guide",
		Text: `MSC Mentor Guide

A practical companion for new Medical Service Corps officers. This
guide collects career advice, timelines, and informal tips from senior
officers. It is not policy and does not supersede any instruction.

Development teams meet twice a year to vector officers toward the
assignments and education that fit their records. Talk to your mentor
well before your records meet the board.`,
	},
}

var seedFileName = flag.String("src", "", "file of seed document text")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	engine, err := doctrina.NewEngine("./policy_db")
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	sources := documents
	if seedFileName != nil && *seedFileName != "" {
		data, err := os.ReadFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		sources = []ingestion.Source{{
			ID:        *seedFileName,
			Kind:      core.SourceKindFile,
			Title:     *seedFileName,
			Text:      string(data),
			LocalPath: *seedFileName,
		}}
	}

	result, err := engine.Ingest(ctx, sources)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded index",
		"passages", result.NumPassages,
		"sources", result.Sources,
		"generation", result.Generation)
}
