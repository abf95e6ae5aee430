package boot

import (
	"crb/src/common"
	"crb/src/db"
	"crb/src/lib"
	"crb/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.GalleryImage{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the hourly sweep that moves confirmed bookings past
// their checkout date into completed.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateDurationJob(func() {
		common.CompleteElapsedBookings()
	}, time.Hour)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
